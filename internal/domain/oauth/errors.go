package oauth

import "errors"

// Sentinel errors for the login flow. Handlers map these onto HTTP statuses;
// anything not in this list is treated as an internal server error.
var (
	// ErrConfigurationMissing indicates required provider or signing
	// configuration is absent for the requested operation.
	ErrConfigurationMissing = errors.New("oauth: required configuration missing")

	// ErrInvalidState indicates an unknown, expired, or already-consumed
	// CSRF state token. Never retried: the caller must restart the flow.
	ErrInvalidState = errors.New("oauth: invalid or expired state")

	// ErrTokenExchangeFailed indicates the code-for-token exchange failed.
	ErrTokenExchangeFailed = errors.New("oauth: token exchange failed")

	// ErrIdentityFetchFailed indicates the identity endpoint call failed.
	ErrIdentityFetchFailed = errors.New("oauth: identity fetch failed")

	// ErrIdentityMissing indicates the identity response carried no user id.
	ErrIdentityMissing = errors.New("oauth: provider user id missing")

	// ErrInvalidSession indicates session verification failed. Deliberately
	// opaque: signature, expiry, and malformed-token failures are not
	// distinguished to callers.
	ErrInvalidSession = errors.New("oauth: invalid session")

	// ErrUserNotFound indicates no user record exists for a subject key.
	ErrUserNotFound = errors.New("oauth: user not found")
)
