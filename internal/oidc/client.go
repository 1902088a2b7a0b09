package oidc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var (
	ErrMissingIDToken = errors.New("oidc: token response has no id_token")
	ErrInvalidIDToken = errors.New("oidc: invalid id_token")
)

// Identity is what the provider asserts about the logged in user.
type Identity struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

type idTokenClaims struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	GivenName       string `json:"given_name"`
	FamilyName      string `json:"family_name"`
	ProfileImageURL string `json:"profile_image_url"`
	Picture         string `json:"picture"`
	jwt.RegisteredClaims
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Client struct {
	cfg       Config
	discovery *DiscoveryCache
	now       func() time.Time
}

func NewClient(cfg Config, discovery *DiscoveryCache) *Client {
	return &Client{
		cfg:       cfg,
		discovery: discovery,
		now:       time.Now,
	}
}

func (c *Client) oauth2Config(ctx context.Context) (*oauth2.Config, *Discovery, error) {
	d, err := c.discovery.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURL,
		Scopes:       []string{"openid", "email", "profile", "offline_access"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  d.AuthorizationEndpoint,
			TokenURL: d.TokenEndpoint,
		},
	}, d, nil
}

// AuthCodeURL is where the browser is sent to log in.
func (c *Client) AuthCodeURL(ctx context.Context, state string) (string, error) {
	oc, _, err := c.oauth2Config(ctx)
	if err != nil {
		return "", err
	}
	return oc.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "login consent")), nil
}

// Exchange trades the callback code for the user's identity. The id_token
// comes straight from the token endpoint, so its claims are checked but
// its signature is not.
func (c *Client) Exchange(ctx context.Context, code string) (*Identity, error) {
	oc, d, err := c.oauth2Config(ctx)
	if err != nil {
		return nil, err
	}

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oidc: exchange code: %w", err)
	}

	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return nil, ErrMissingIDToken
	}

	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if err := c.checkClaims(claims, d); err != nil {
		return nil, err
	}

	return &Identity{
		Subject:         claims.Subject,
		Email:           claims.Email,
		FirstName:       firstNonEmpty(claims.FirstName, claims.GivenName),
		LastName:        firstNonEmpty(claims.LastName, claims.FamilyName),
		ProfileImageURL: firstNonEmpty(claims.ProfileImageURL, claims.Picture),
	}, nil
}

func (c *Client) checkClaims(claims *idTokenClaims, d *Discovery) error {
	if claims.Subject == "" {
		return fmt.Errorf("%w: missing sub", ErrInvalidIDToken)
	}
	if d.Issuer != "" && claims.Issuer != d.Issuer {
		return fmt.Errorf("%w: issuer %q", ErrInvalidIDToken, claims.Issuer)
	}
	if !slices.Contains(claims.Audience, c.cfg.ClientID) {
		return fmt.Errorf("%w: audience", ErrInvalidIDToken)
	}
	if claims.ExpiresAt == nil || !c.now().Before(claims.ExpiresAt.Time) {
		return fmt.Errorf("%w: expired", ErrInvalidIDToken)
	}
	return nil
}

// LogoutURL ends the provider session and comes back to returnTo. It falls
// back to returnTo when the provider has no end_session_endpoint.
func (c *Client) LogoutURL(ctx context.Context, returnTo string) string {
	d, err := c.discovery.Get(ctx)
	if err != nil || d.EndSessionEndpoint == "" {
		return returnTo
	}

	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("post_logout_redirect_uri", returnTo)
	return d.EndSessionEndpoint + "?" + q.Encode()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
