// Package oidc implements the authorization code login against an OpenID
// Connect provider.
package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
)

const wellKnownPath = "/.well-known/openid-configuration"

// Discovery is the subset of the provider metadata the login flow needs.
type Discovery struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
	EndSessionEndpoint    string `json:"end_session_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

type FetchFunc func(ctx context.Context) (*Discovery, error)

// HTTPFetcher loads the discovery document of issuer.
func HTTPFetcher(client *http.Client, issuer string) FetchFunc {
	url := strings.TrimRight(issuer, "/") + wellKnownPath

	return func(ctx context.Context) (*Discovery, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("discovery: unexpected status %d", resp.StatusCode)
		}

		var d Discovery
		if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
			return nil, fmt.Errorf("discovery: decode: %w", err)
		}
		if d.AuthorizationEndpoint == "" || d.TokenEndpoint == "" {
			return nil, fmt.Errorf("discovery: incomplete document from %s", url)
		}
		return &d, nil
	}
}

// DiscoveryCache keeps the provider metadata for ttl. A miss fetches with
// exponential backoff. Concurrent misses share one fetch.
type DiscoveryCache struct {
	fetch FetchFunc
	ttl   time.Duration
	log   *logger.Logger

	Attempts     int
	InitialDelay time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	doc       *Discovery
	fetchedAt time.Time
}

func NewDiscoveryCache(fetch FetchFunc, ttl time.Duration, log *logger.Logger) *DiscoveryCache {
	return &DiscoveryCache{
		fetch:        fetch,
		ttl:          ttl,
		log:          log,
		Attempts:     5,
		InitialDelay: time.Second,
		now:          time.Now,
		sleep:        sleepCtx,
	}
}

func (c *DiscoveryCache) Get(ctx context.Context) (*Discovery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.doc, nil
	}

	doc, err := c.fetchWithBackoff(ctx)
	if err != nil {
		return nil, err
	}

	c.doc = doc
	c.fetchedAt = c.now()
	return doc, nil
}

// Invalidate forces the next Get to fetch again.
func (c *DiscoveryCache) Invalidate() {
	c.mu.Lock()
	c.doc = nil
	c.mu.Unlock()
}

func (c *DiscoveryCache) fetchWithBackoff(ctx context.Context) (*Discovery, error) {
	delay := c.InitialDelay
	var lastErr error

	for i := 0; i < c.Attempts; i++ {
		doc, err := c.fetch(ctx)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if i == c.Attempts-1 {
			break
		}
		c.log.Warn().
			Err(err).
			Int("attempt", i+1).
			Dur("retry_in", delay).
			Msg("oidc discovery failed")

		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}

	return nil, fmt.Errorf("oidc discovery: %w", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
