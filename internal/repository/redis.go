package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainoauth "github.com/tamara-re/Pinterest-Ranker-Backend/internal/domain/oauth"
)

const statePrefix = "oauth:state:"

var _ StateStore = (*RedisStateStore)(nil)

// RedisStateStore keeps CSRF state records in Redis, relying on key TTLs for
// background expiry and GETDEL for consume-once semantics.
type RedisStateStore struct {
	client *redis.Client
}

// NewRedisStateStore wraps an existing Redis client.
func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) Save(ctx context.Context, state domainoauth.AuthState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	ttl := time.Until(state.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("save state: already expired")
	}
	if err := s.client.Set(ctx, statePrefix+state.State, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Consume(ctx context.Context, state string) (domainoauth.AuthState, error) {
	val, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return domainoauth.AuthState{}, domainoauth.ErrInvalidState
	}
	if err != nil {
		return domainoauth.AuthState{}, fmt.Errorf("consume state: %w", err)
	}

	var record domainoauth.AuthState
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return domainoauth.AuthState{}, fmt.Errorf("decode state: %w", err)
	}
	if time.Now().After(record.ExpiresAt) {
		return domainoauth.AuthState{}, domainoauth.ErrInvalidState
	}
	return record, nil
}
