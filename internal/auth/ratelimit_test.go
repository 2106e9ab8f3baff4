package auth

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginLimiterFailOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil limiter allows", func(t *testing.T) {
		var limiter *LoginLimiter
		require.True(t, limiter.Allow(ctx, "alice"))
		limiter.RecordFailure(ctx, "alice")
		limiter.Reset(ctx, "alice")
	})

	t.Run("nil client allows", func(t *testing.T) {
		limiter := NewLoginLimiter(nil, 3, time.Minute, zap.NewNop())
		require.True(t, limiter.Allow(ctx, "alice"))
		limiter.RecordFailure(ctx, "alice")
		limiter.Reset(ctx, "alice")
	})

	t.Run("unreachable redis allows", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 50 * time.Millisecond,
			MaxRetries:  -1,
		})
		t.Cleanup(func() { _ = client.Close() })

		limiter := NewLoginLimiter(client, 3, time.Minute, zap.NewNop())
		require.True(t, limiter.Allow(ctx, "alice"))
		limiter.RecordFailure(ctx, "alice")
		limiter.Reset(ctx, "alice")
	})
}

func TestNewLoginLimiterDefaults(t *testing.T) {
	t.Parallel()

	limiter := NewLoginLimiter(nil, 0, 0, zap.NewNop())
	require.Equal(t, 10, limiter.max)
	require.Equal(t, 5*time.Minute, limiter.window)
}
