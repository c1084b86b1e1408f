package oauth

import "time"

// AuthState captures the CSRF state record persisted during authorization.
// A state value is consumed at most once: the store deletes it on first read.
type AuthState struct {
	State     string    `json:"state"`
	ReturnTo  string    `json:"return_to"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenResponse models the response from the provider token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Identity represents the provider user identity returned by the identity
// endpoint. Pinterest returns the id either top-level or nested under
// user_account depending on the API surface.
type Identity struct {
	ID          string `json:"id"`
	UserAccount struct {
		ID string `json:"id"`
	} `json:"user_account"`
}

// UserID returns the provider user identifier, preferring the top-level field.
func (i Identity) UserID() string {
	if i.ID != "" {
		return i.ID
	}
	return i.UserAccount.ID
}
