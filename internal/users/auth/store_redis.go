// Copyright (c) 2026 Recenzo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/recenzo/internal/platform/constants"
)

// RedisAttemptRepository implements [AttemptRepository] using Redis.
type RedisAttemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository creates a new Redis-backed [AttemptRepository].
func NewAttemptRepository(client *redis.Client) *RedisAttemptRepository {
	return &RedisAttemptRepository{client: client}
}

func attemptKey(username string) string {
	return constants.RedisPrefixCodeAttempts + username
}

/*
Incr increments the failure counter for a username.

Description: The expiry is armed only when the key is first created, so the
window runs from the first failure rather than sliding on every attempt.

Parameters:
  - context: context.Context
  - username: string
  - window: time.Duration

Returns:
  - int64: Counter value after the increment
  - error: Connectivity errors
*/
func (repository *RedisAttemptRepository) Incr(context context.Context, username string, window time.Duration) (int64, error) {
	key := attemptKey(username)

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_code_attempt_incr_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(context, key, window).Err(); err != nil {
			return count, fmt.Errorf("redis_code_attempt_expire_failed: %w", err)
		}
	}

	return count, nil
}

// Count returns the current failure counter, zero when no key exists.
func (repository *RedisAttemptRepository) Count(context context.Context, username string) (int64, error) {
	count, err := repository.client.Get(context, attemptKey(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_code_attempt_get_failed: %w", err)
	}

	return count, nil
}

// Reset clears the failure counter after a successful exchange.
func (repository *RedisAttemptRepository) Reset(context context.Context, username string) error {
	if err := repository.client.Del(context, attemptKey(username)).Err(); err != nil {
		return fmt.Errorf("redis_code_attempt_del_failed: %w", err)
	}

	return nil
}
