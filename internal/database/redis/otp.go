package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OTPStore keeps email verification codes keyed by user id. Codes expire with
// the key TTL, so stale codes need no cleanup.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	return &OTPStore{
		client: client,
		ttl:    ttl,
	}
}

func otpKey(userID uuid.UUID) string {
	return "otp:" + userID.String()
}

func (s *OTPStore) Set(ctx context.Context, userID uuid.UUID, code string) error {
	const op = "database.redis.OTPStore.Set"

	if err := s.client.Set(ctx, otpKey(userID), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: failed to store otp: %w", op, err)
	}

	return nil
}

// consumeOTPScript deletes the stored code only when it matches the submitted
// one, in a single step. A wrong guess leaves the pending code intact.
var consumeOTPScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// Consume reports whether code matches the stored one and removes it on a
// match, so a code verifies at most once. A missing code and a mismatch are
// indistinguishable to the caller.
func (s *OTPStore) Consume(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	const op = "database.redis.OTPStore.Consume"

	res, err := consumeOTPScript.Run(ctx, s.client, []string{otpKey(userID)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("%s: failed to consume otp: %w", op, err)
	}

	return res == 1, nil
}
