package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"anoa.com/swetter/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// RateLimitError is returned when a user acts again before their cooldown expires.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

func key(userID uint, action string) string {
	return fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
}

// CheckAndSetRateLimit reports whether the action is allowed and, if so, starts the cooldown.
// A nil client or a non-positive limit always allows.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uint, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, key(userID, action), "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func GetRateLimitTTL(ctx context.Context, rdb *redis.Client, userID uint, action string) (time.Duration, error) {
	if rdb == nil {
		return 0, nil
	}
	return rdb.TTL(ctx, key(userID, action)).Result()
}

func ClearRateLimit(ctx context.Context, rdb *redis.Client, userID uint, action string) error {
	if rdb == nil {
		return nil
	}
	_, err := rdb.Del(ctx, key(userID, action)).Result()
	return err
}

// Limiter applies a single cooldown to every content submission of a user.
type Limiter struct {
	rdb   *redis.Client
	limit time.Duration
}

func NewLimiter(rdb *redis.Client, limit time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit}
}

// Allow returns a *RateLimitError when the user is still cooling down.
func (l *Limiter) Allow(ctx context.Context, userID uint, action string) error {
	if l == nil {
		return nil
	}
	allowed, err := CheckAndSetRateLimit(ctx, l.rdb, userID, action, l.limit)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}
	ttl, _ := GetRateLimitTTL(ctx, l.rdb, userID, action)
	return &RateLimitError{
		Message:    fmt.Sprintf("you are doing that too fast. Please wait %.0f seconds", ttl.Seconds()),
		RetryAfter: ttl,
	}
}

// Release drops the cooldown, used when the guarded operation did not persist anything.
func (l *Limiter) Release(ctx context.Context, userID uint, action string) {
	if l == nil {
		return
	}
	_ = ClearRateLimit(ctx, l.rdb, userID, action)
}
