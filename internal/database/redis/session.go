package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vadimbarashkov/linknest/internal/database"
)

// SessionStore maps opaque refresh tokens to user ids. Sessions end either by
// explicit deletion (logout, rotation) or by TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionStore) Save(ctx context.Context, token string, userID uuid.UUID) error {
	const op = "database.redis.SessionStore.Save"

	if err := s.client.Set(ctx, sessionKey(token), userID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to store session: %w", op, err)
	}

	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	const op = "database.redis.SessionStore.Get"

	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, database.ErrSessionNotFound)
		}

		return uuid.Nil, fmt.Errorf("%s: failed to get session: %w", op, err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: corrupt session value: %w", op, err)
	}

	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	const op = "database.redis.SessionStore.Delete"

	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("%s: failed to delete session: %w", op, err)
	}

	return nil
}
