package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain"
	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

var _ UserDirectory = (*PostgresUserDirectory)(nil)

// PostgresUserDirectory implements UserDirectory on a pgx pool.
type PostgresUserDirectory struct {
	db *pgxpool.Pool
}

// NewPostgresUserDirectory creates the directory and ensures its schema.
func NewPostgresUserDirectory(ctx context.Context, pool *pgxpool.Pool) (*PostgresUserDirectory, error) {
	dir := &PostgresUserDirectory{db: pool}
	if err := dir.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("init users schema: %w", err)
	}
	return dir, nil
}

const upsertUserSQL = `INSERT INTO users
	(subject_key, provider, provider_user_id, provider_access_token, provider_token_expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (subject_key)
DO UPDATE SET
	provider_access_token = EXCLUDED.provider_access_token,
	provider_token_expires_at = EXCLUDED.provider_token_expires_at,
	updated_at = EXCLUDED.updated_at`

func (d *PostgresUserDirectory) Upsert(ctx context.Context, user domain.User) error {
	if _, err := d.db.Exec(ctx, upsertUserSQL,
		user.SubjectKey,
		user.Provider,
		user.ProviderUserID,
		user.ProviderAccessToken,
		user.ProviderTokenExpiresAt,
		user.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

const getUserSQL = `SELECT subject_key, provider, provider_user_id, provider_access_token, provider_token_expires_at, created_at, updated_at
FROM users
WHERE subject_key = $1`

func (d *PostgresUserDirectory) Get(ctx context.Context, subjectKey string) (domain.User, error) {
	var user domain.User
	err := d.db.QueryRow(ctx, getUserSQL, subjectKey).Scan(
		&user.SubjectKey,
		&user.Provider,
		&user.ProviderUserID,
		&user.ProviderAccessToken,
		&user.ProviderTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domainoauth.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (d *PostgresUserDirectory) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		subject_key TEXT PRIMARY KEY,
		provider VARCHAR(64) NOT NULL,
		provider_user_id VARCHAR(255) NOT NULL,
		provider_access_token TEXT,
		provider_token_expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_provider_identity ON users(provider, provider_user_id);
	`

	_, err := d.db.Exec(ctx, query)
	return err
}
