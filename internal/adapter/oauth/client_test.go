package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

func testClient(tokenURL, identityURL string) *HTTPProviderClient {
	return NewHTTPProviderClient(config.Config{
		PinterestClientID:     "client-id",
		PinterestClientSecret: "client-secret",
		PinterestRedirectURI:  "https://app.example.com/auth/pinterest/callback",
		PinterestTokenURL:     tokenURL,
		PinterestIdentityURL:  identityURL,
		ProviderTimeout:       5 * time.Second,
	})
}

func TestExchangeCodeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "the-code", r.PostForm.Get("code"))
		require.Equal(t, "client-id", r.PostForm.Get("client_id"))
		require.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		require.Equal(t, "https://app.example.com/auth/pinterest/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"bearer","expires_in":2592000,"scope":"user_accounts:read"}`))
	}))
	defer srv.Close()

	token, err := testClient(srv.URL, "").ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	require.Equal(t, "at-1", token.AccessToken)
	require.Equal(t, int64(2592000), token.ExpiresIn)
}

func TestExchangeCodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "").ExchangeCode(context.Background(), "bad-code")
	require.ErrorIs(t, err, domainoauth.ErrTokenExchangeFailed)
	require.Contains(t, err.Error(), "invalid_grant")
}

func TestExchangeCodeMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "").ExchangeCode(context.Background(), "the-code")
	require.ErrorIs(t, err, domainoauth.ErrTokenExchangeFailed)
}

func TestFetchIdentityTopLevelID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"9898","username":"ranker"}`))
	}))
	defer srv.Close()

	identity, err := testClient("", srv.URL).FetchIdentity(context.Background(), "at-1")
	require.NoError(t, err)
	require.Equal(t, "9898", identity.UserID())
}

func TestFetchIdentityNestedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_account":{"id":"5555"}}`))
	}))
	defer srv.Close()

	identity, err := testClient("", srv.URL).FetchIdentity(context.Background(), "at-1")
	require.NoError(t, err)
	require.Equal(t, "5555", identity.UserID())
}

func TestFetchIdentityUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient("", srv.URL).FetchIdentity(context.Background(), "expired")
	require.ErrorIs(t, err, domainoauth.ErrIdentityFetchFailed)
}
