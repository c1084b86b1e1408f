package domain

import "time"

// SubjectKeyPrefix is the namespace under which user records are keyed.
const SubjectKeyPrefix = "USER#"

// User represents an end user linked to an external identity provider.
type User struct {
	SubjectKey             string
	Provider               string
	ProviderUserID         string
	ProviderAccessToken    string
	ProviderTokenExpiresAt *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewSubjectKey derives the canonical record key for a provider identity.
// The same (provider, providerUserID) pair always maps to the same key, so
// repeated logins upsert one record instead of creating duplicates.
func NewSubjectKey(provider, providerUserID string) string {
	return SubjectKeyPrefix + provider + ":" + providerUserID
}
