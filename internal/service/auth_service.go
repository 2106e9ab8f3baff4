package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/campus-auth/internal/auth"
	"github.com/campuskit/campus-auth/internal/config"
	"github.com/campuskit/campus-auth/internal/domain"
	"github.com/campuskit/campus-auth/internal/events"
	"github.com/campuskit/campus-auth/internal/repository"
	apperrors "github.com/campuskit/campus-auth/pkg/util"
)

// LoginLimiter bounds repeated login attempts per handle.
type LoginLimiter interface {
	Allow(ctx context.Context, handle string) bool
	RecordFailure(ctx context.Context, handle string)
	Reset(ctx context.Context, handle string)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	limiter     LoginLimiter
	bus         *events.Bus
	bcryptCost  int
	dummyDigest string
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	LoginLimiter LoginLimiter
	Bus          *events.Bus
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	// digest compared when the handle is unknown, so lookup misses cost the
	// same as password mismatches
	dummyDigest, _ := auth.HashPassword(uuid.NewString(), cfg.Auth.BcryptCost)
	return &AuthService{
		users:       deps.UserRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		limiter:     deps.LoginLimiter,
		bus:         deps.Bus,
		bcryptCost:  cfg.Auth.BcryptCost,
		dummyDigest: dummyDigest,
	}
}

// Register creates a new subject. The plaintext and the digest never appear
// in responses, events or logs.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         parsedRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperrors.NewConflict("username already taken", nil)
		}
		return nil, apperrors.NewUpstream(err)
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	return user, nil
}

// Login authenticates a subject and issues a token embedding its ID and
// role. Unknown handles and wrong passwords funnel through the same branch,
// so both produce an identical generic outcome.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username == "" || password == "" {
		return "", time.Time{}, apperrors.NewValidationError("username and password required", nil)
	}

	// the limiter gate runs before any store or crypto work
	if s.limiter != nil && !s.limiter.Allow(ctx, username) {
		s.publish(ctx, events.EventLoginRateLimited, events.LoginRateLimitedPayload{Username: username})
		return "", time.Time{}, apperrors.NewRateLimited("too many login attempts")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", time.Time{}, apperrors.NewUpstream(err)
	}

	verified := false
	if user != nil {
		verified = auth.VerifyPassword(password, user.PasswordHash)
	} else {
		auth.VerifyPassword(password, s.dummyDigest)
	}
	if !verified {
		if s.limiter != nil {
			s.limiter.RecordFailure(ctx, username)
		}
		s.publish(ctx, events.EventLoginFailed, events.LoginFailedPayload{Username: username})
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, username)
	}
	s.publish(ctx, events.EventLoginSucceeded, events.LoginSucceededPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	return token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
