package repository

import (
	"context"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

// StateStore persists one-time CSRF state records for the authorization flow.
type StateStore interface {
	// Save persists the state record until its expiry.
	Save(ctx context.Context, state domainoauth.AuthState) error

	// Consume retrieves and deletes the record in one logical operation.
	// Absent or expired states return domain/oauth.ErrInvalidState. The
	// delete happens before the caller acts on the record: one-time use
	// takes priority over retry-ability.
	Consume(ctx context.Context, state string) (domainoauth.AuthState, error)
}

// UserDirectory stores user records keyed by subject key.
type UserDirectory interface {
	// Upsert creates the record or overwrites it by key. CreatedAt from the
	// first write is preserved; everything else is last-write-wins.
	Upsert(ctx context.Context, user domain.User) error

	// Get returns the record, or domain/oauth.ErrUserNotFound.
	Get(ctx context.Context, subjectKey string) (domain.User, error)
}
