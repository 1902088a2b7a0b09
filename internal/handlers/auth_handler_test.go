package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/oidc"
	"github.com/BruksfildServices01/barbershop-manager/internal/session"
	"github.com/BruksfildServices01/barbershop-manager/internal/testutil"
)

const appURL = "http://app.test"

type fakeProvider struct {
	identity *oidc.Identity
	err      error
	code     string
}

func (f *fakeProvider) AuthCodeURL(_ context.Context, state string) (string, error) {
	return "http://idp.test/authorize?state=" + state, nil
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*oidc.Identity, error) {
	f.code = code
	return f.identity, f.err
}

func (f *fakeProvider) LogoutURL(_ context.Context, returnTo string) string {
	return "http://idp.test/logout?return_to=" + url.QueryEscape(returnTo)
}

type authFixture struct {
	r        *gin.Engine
	users    *repository.UserGormRepository
	sessions *session.Manager
}

func newAuthFixture(t *testing.T, provider OIDCProvider) *authFixture {
	db := testutil.NewDB(t)
	users := repository.NewUserGormRepository(db)
	sessions := session.NewManager("test-secret-test-secret-test-secret", time.Hour)

	h := NewAuthHandler(users, sessions, provider, appURL, false)
	h.checkDomain = func(string) bool { return true }

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/login", h.OIDCLogin)
	r.GET("/callback", h.OIDCCallback)
	r.GET("/logout", h.Logout)

	me := NewMeHandler(users)
	r.GET("/auth/user", middleware.AuthMiddleware(sessions), me.GetMe)

	return &authFixture{r: r, users: users, sessions: sessions}
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	f := newAuthFixture(t, nil)

	w := serve(t, f.r, http.MethodPost, "/auth/register", gin.H{
		"first_name": "Ana",
		"email":      "Ana@Example.com",
		"password":   "segredo123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	out := decode[authResponse](t, w)
	require.NotNil(t, out.User.Email)
	assert.Equal(t, "ana@example.com", *out.User.Email)
	assert.NotEmpty(t, out.Token)

	c := cookie(w, session.CookieName)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, out.Token, c.Value)

	w = serve(t, f.r, http.MethodPost, "/auth/register", gin.H{
		"first_name": "Ana",
		"email":      "ana@example.com",
		"password":   "segredo123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_exists", errorCode(t, w))

	w = serve(t, f.r, http.MethodPost, "/auth/login", gin.H{"email": "ana@example.com", "password": "errada123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = serve(t, f.r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@example.com", "password": "segredo123"})
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	w = serve(t, f.r, http.MethodPost, "/auth/login", gin.H{"email": " ANA@example.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[authResponse](t, w).Token

	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, out.User.ID, decode[models.User](t, w).ID)
}

func TestRegisterRejectsUnresolvableDomain(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewAuthHandler(repository.NewUserGormRepository(db), session.NewManager("s", time.Hour), nil, appURL, false)
	h.checkDomain = func(string) bool { return false }

	r := gin.New()
	r.POST("/auth/register", h.Register)

	w := serve(t, r, http.MethodPost, "/auth/register", gin.H{
		"first_name": "Ana",
		"email":      "ana@nowhere.invalid",
		"password":   "segredo123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email_domain", errorCode(t, w))
}

func TestOIDCDisabled(t *testing.T) {
	f := newAuthFixture(t, nil)

	w := serve(t, f.r, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "oidc_disabled", errorCode(t, w))

	w = serve(t, f.r, http.MethodGet, "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, appURL+"/", w.Header().Get("Location"))
}

func TestOIDCLoginFlow(t *testing.T) {
	provider := &fakeProvider{identity: &oidc.Identity{
		Subject:   "idp|42",
		Email:     "Bruno@Example.com",
		FirstName: "Bruno",
	}}
	f := newAuthFixture(t, provider)

	w := serve(t, f.r, http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusFound, w.Code)

	state := cookie(w, stateCookie)
	require.NotNil(t, state)
	assert.Contains(t, w.Header().Get("Location"), "state="+state.Value)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state="+state.Value, nil)
	req.AddCookie(state)
	w = httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, appURL+"/", w.Header().Get("Location"))
	assert.Equal(t, "abc", provider.code)

	sess := cookie(w, session.CookieName)
	require.NotNil(t, sess)
	claims, err := f.sessions.Parse(sess.Value)
	require.NoError(t, err)
	assert.Equal(t, "idp|42", claims.UserID())

	user, err := f.users.GetByID(context.Background(), "idp|42")
	require.NoError(t, err)
	assert.Equal(t, "bruno@example.com", *user.Email)

	w = serve(t, f.r, http.MethodGet, "/logout", nil)
	assert.Equal(t, "http://idp.test/logout?return_to="+url.QueryEscape(appURL+"/"), w.Header().Get("Location"))
}

func TestOIDCCallbackRejectsStateMismatch(t *testing.T) {
	provider := &fakeProvider{identity: &oidc.Identity{Subject: "idp|42"}}
	f := newAuthFixture(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "expected"})
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, appURL+"/?login=failed", w.Header().Get("Location"))
	assert.Empty(t, provider.code, "code must not be exchanged")
	assert.Nil(t, cookie(w, session.CookieName))
}

func TestOIDCCallbackExchangeFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("bad id token")}
	f := newAuthFixture(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "s1"})
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	assert.Equal(t, appURL+"/?login=failed", w.Header().Get("Location"))
}
