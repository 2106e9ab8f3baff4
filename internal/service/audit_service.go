package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campuskit/campus-auth/internal/config"
	"github.com/campuskit/campus-auth/internal/events"
	"github.com/campuskit/campus-auth/internal/observability"
)

// AuditService records authentication events for operational review and
// feeds the auth outcome counters.
type AuditService struct {
	bus     *events.Bus
	logger  *zap.Logger
	metrics *observability.Metrics
	cfg     config.AuditConfig
}

// NewAuditService creates the service.
func NewAuditService(bus *events.Bus, logger *zap.Logger, metrics *observability.Metrics, cfg config.AuditConfig) *AuditService {
	return &AuditService{
		bus:     bus,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.bus == nil {
		return
	}
	a.bus.Subscribe(events.EventUserRegistered, a.handleUserRegistered)
	a.bus.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.bus.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.bus.Subscribe(events.EventLoginRateLimited, a.handleLoginRateLimited)
}

func (a *AuditService) handleUserRegistered(ctx context.Context, event events.Event) error {
	a.metrics.RecordAuth(observability.AuthRegistrations)
	a.logger.Info("UserRegistered", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) handleLoginSucceeded(_ context.Context, event events.Event) error {
	a.metrics.RecordAuth(observability.AuthLoginSuccesses)
	a.logger.Info("LoginSucceeded", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLoginFailed(ctx context.Context, event events.Event) error {
	a.metrics.RecordAuth(observability.AuthLoginFailures)
	a.logger.Info("LoginFailed", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) handleLoginRateLimited(ctx context.Context, event events.Event) error {
	a.metrics.RecordAuth(observability.AuthRateLimitHits)
	a.logger.Warn("LoginRateLimited", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	a.sendWebhookStub(ctx, event)
	return nil
}

func (a *AuditService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(a.cfg.WebhookURL) == "" {
		return
	}
	a.logger.Debug("sendWebhookStub",
		zap.String("url", a.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
