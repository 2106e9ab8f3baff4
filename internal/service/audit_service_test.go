package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuskit/campus-auth/internal/config"
	"github.com/campuskit/campus-auth/internal/events"
	"github.com/campuskit/campus-auth/internal/observability"
)

func TestAuditServiceCountsOutcomes(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	metrics := observability.NewMetrics()
	audit := NewAuditService(bus, zap.NewNop(), metrics, config.AuditConfig{})
	audit.RegisterHandlers()

	ctx := context.Background()
	publish := func(eventType events.EventType, payload interface{}) {
		require.NoError(t, bus.Publish(ctx, events.Event{
			ID:        "event-1",
			Type:      eventType,
			Timestamp: time.Now(),
			Payload:   payload,
		}))
	}

	publish(events.EventUserRegistered, events.UserRegisteredPayload{UserID: "u1", Username: "alice"})
	publish(events.EventLoginSucceeded, events.LoginSucceededPayload{UserID: "u1"})
	publish(events.EventLoginFailed, events.LoginFailedPayload{Username: "alice"})
	publish(events.EventLoginFailed, events.LoginFailedPayload{Username: "alice"})
	publish(events.EventLoginRateLimited, events.LoginRateLimitedPayload{Username: "alice"})

	require.Equal(t, int64(1), metrics.AuthCount(observability.AuthRegistrations))
	require.Equal(t, int64(1), metrics.AuthCount(observability.AuthLoginSuccesses))
	require.Equal(t, int64(2), metrics.AuthCount(observability.AuthLoginFailures))
	require.Equal(t, int64(1), metrics.AuthCount(observability.AuthRateLimitHits))
}

func TestBusDeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	first, second := 0, 0
	bus.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		first++
		return nil
	})
	bus.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		second++
		return nil
	})

	err := bus.Publish(context.Background(), events.Event{Type: events.EventLoginFailed})
	require.NoError(t, err)
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)
}
