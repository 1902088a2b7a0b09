package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

func countingFetcher(calls *int32, doc *Discovery) FetchFunc {
	return func(context.Context) (*Discovery, error) {
		atomic.AddInt32(calls, 1)
		return doc, nil
	}
}

func TestDiscoveryCacheFetchesOnceWithinTTL(t *testing.T) {
	var calls int32
	c := NewDiscoveryCache(countingFetcher(&calls, &Discovery{Issuer: "x"}), time.Hour, logger.Nop())
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls)

	now = now.Add(61 * time.Minute)
	_, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls, "refetch after expiry")
}

func TestDiscoveryCacheInvalidate(t *testing.T) {
	var calls int32
	c := NewDiscoveryCache(countingFetcher(&calls, &Discovery{}), time.Hour, logger.Nop())

	_, _ = c.Get(context.Background())
	c.Invalidate()
	_, _ = c.Get(context.Background())

	assert.Equal(t, int32(2), calls)
}

func TestDiscoveryCacheBacksOff(t *testing.T) {
	var calls int32
	fetch := func(context.Context) (*Discovery, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("unavailable")
		}
		return &Discovery{Issuer: "ok"}, nil
	}

	c := NewDiscoveryCache(fetch, time.Hour, logger.Nop())
	var delays []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	d, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", d.Issuer)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestDiscoveryCacheGivesUp(t *testing.T) {
	var calls int32
	fetch := func(context.Context) (*Discovery, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("unavailable")
	}

	c := NewDiscoveryCache(fetch, time.Hour, logger.Nop())
	c.sleep = func(context.Context, time.Duration) error { return nil }

	_, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(5), calls)
}

// ======================================================
// PROVIDER
// ======================================================

type provider struct {
	*httptest.Server
	idToken string
}

func newProvider(t *testing.T) *provider {
	p := &provider{}
	mux := http.NewServeMux()

	mux.HandleFunc(wellKnownPath, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Discovery{
			Issuer:                p.URL,
			AuthorizationEndpoint: p.URL + "/auth",
			TokenEndpoint:         p.URL + "/token",
			EndSessionEndpoint:    p.URL + "/session/end",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at",
			"token_type":   "Bearer",
			"expires_in":   3600,
			"id_token":     p.idToken,
		})
	})

	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Close)
	return p
}

func (p *provider) sign(t *testing.T, claims jwt.MapClaims) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-key"))
	require.NoError(t, err)
	p.idToken = raw
}

func (p *provider) client() *Client {
	cache := NewDiscoveryCache(HTTPFetcher(p.Client(), p.URL), time.Hour, logger.Nop())
	return NewClient(Config{
		ClientID:     "barber-app",
		ClientSecret: "s3cret",
		RedirectURL:  "http://localhost:8080/api/callback",
	}, cache)
}

func TestExchangeReturnsIdentity(t *testing.T) {
	p := newProvider(t)
	p.sign(t, jwt.MapClaims{
		"iss":               p.URL,
		"aud":               "barber-app",
		"sub":               "42",
		"exp":               time.Now().Add(time.Hour).Unix(),
		"email":             "jean@example.com",
		"first_name":        "Jean",
		"last_name":         "Teixeira",
		"profile_image_url": "https://img/jean.png",
	})

	id, err := p.client().Exchange(context.Background(), "code")
	require.NoError(t, err)

	assert.Equal(t, &Identity{
		Subject:         "42",
		Email:           "jean@example.com",
		FirstName:       "Jean",
		LastName:        "Teixeira",
		ProfileImageURL: "https://img/jean.png",
	}, id)
}

func TestExchangeRejectsBadClaims(t *testing.T) {
	p := newProvider(t)
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"iss": p.URL,
			"aud": "barber-app",
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	cases := map[string]func(jwt.MapClaims){
		"wrong issuer":   func(c jwt.MapClaims) { c["iss"] = "https://evil" },
		"wrong audience": func(c jwt.MapClaims) { c["aud"] = "other-app" },
		"expired":        func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Minute).Unix() },
		"no subject":     func(c jwt.MapClaims) { delete(c, "sub") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			claims := valid()
			mutate(claims)
			p.sign(t, claims)

			_, err := p.client().Exchange(context.Background(), "code")
			assert.ErrorIs(t, err, ErrInvalidIDToken)
		})
	}
}

func TestAuthCodeURLAndLogoutURL(t *testing.T) {
	p := newProvider(t)
	c := p.client()

	raw, err := c.AuthCodeURL(context.Background(), "state-1")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth", u.Path)
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, "barber-app", u.Query().Get("client_id"))

	logout, err := url.Parse(c.LogoutURL(context.Background(), "http://localhost:5173/"))
	require.NoError(t, err)
	assert.Equal(t, "/session/end", logout.Path)
	assert.Equal(t, "http://localhost:5173/", logout.Query().Get("post_logout_redirect_uri"))
}
