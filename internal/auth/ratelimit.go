package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptPrefix = "login_attempts:"

// LoginLimiter counts failed login attempts per handle in Redis and blocks
// further attempts once the window budget is spent. Redis being unreachable
// degrades to unlimited attempts rather than an outage.
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window, logger: logger}
}

// Allow reports whether another login attempt for the handle may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, handle string) bool {
	if l == nil || l.client == nil {
		return true
	}
	count, err := l.client.Get(ctx, loginAttemptPrefix+handle).Int()
	if err != nil {
		if err != redis.Nil {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
		}
		return true
	}
	return count < l.max
}

// RecordFailure bumps the failed attempt counter for the handle.
func (l *LoginLimiter) RecordFailure(ctx context.Context, handle string) {
	if l == nil || l.client == nil {
		return
	}
	key := loginAttemptPrefix + handle
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
		}
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, handle string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, loginAttemptPrefix+handle).Err(); err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
	}
}
