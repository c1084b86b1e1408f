// Package oauth talks to the external identity provider over HTTP. Upstream
// response bodies are captured into wrapped errors for diagnostics but are
// never surfaced to end users.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

// maxErrorBody caps how much of an upstream failure body is kept for logs.
const maxErrorBody = 2048

// ProviderClient performs the two provider round trips of the callback flow.
type ProviderClient interface {
	// ExchangeCode redeems an authorization code for a provider token.
	ExchangeCode(ctx context.Context, code string) (domainoauth.TokenResponse, error)

	// FetchIdentity loads the provider user identity with a bearer token.
	FetchIdentity(ctx context.Context, accessToken string) (domainoauth.Identity, error)
}

var _ ProviderClient = (*HTTPProviderClient)(nil)

// HTTPProviderClient implements ProviderClient against the configured
// Pinterest endpoints with a bounded-timeout client.
type HTTPProviderClient struct {
	cfg    config.Config
	client *http.Client
}

// NewHTTPProviderClient builds the client; every outbound call is bounded by
// the configured provider timeout in addition to request context cancellation.
func NewHTTPProviderClient(cfg config.Config) *HTTPProviderClient {
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProviderClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPProviderClient) ExchangeCode(ctx context.Context, code string) (domainoauth.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.cfg.PinterestClientID)
	form.Set("client_secret", c.cfg.PinterestClientSecret)
	form.Set("redirect_uri", c.cfg.PinterestRedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.PinterestTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domainoauth.TokenResponse{}, fmt.Errorf("%w: build request: %v", domainoauth.ErrTokenExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return domainoauth.TokenResponse{}, fmt.Errorf("%w: %v", domainoauth.ErrTokenExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainoauth.TokenResponse{}, fmt.Errorf("%w: status %d: %s",
			domainoauth.ErrTokenExchangeFailed, resp.StatusCode, readErrorBody(resp.Body))
	}

	var token domainoauth.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return domainoauth.TokenResponse{}, fmt.Errorf("%w: decode response: %v", domainoauth.ErrTokenExchangeFailed, err)
	}
	if token.AccessToken == "" {
		return domainoauth.TokenResponse{}, fmt.Errorf("%w: no access_token in response", domainoauth.ErrTokenExchangeFailed)
	}
	return token, nil
}

func (c *HTTPProviderClient) FetchIdentity(ctx context.Context, accessToken string) (domainoauth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.PinterestIdentityURL, nil)
	if err != nil {
		return domainoauth.Identity{}, fmt.Errorf("%w: build request: %v", domainoauth.ErrIdentityFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return domainoauth.Identity{}, fmt.Errorf("%w: %v", domainoauth.ErrIdentityFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domainoauth.Identity{}, fmt.Errorf("%w: status %d: %s",
			domainoauth.ErrIdentityFetchFailed, resp.StatusCode, readErrorBody(resp.Body))
	}

	var identity domainoauth.Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return domainoauth.Identity{}, fmt.Errorf("%w: decode response: %v", domainoauth.ErrIdentityFetchFailed, err)
	}
	return identity, nil
}

func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
