package events

import (
	"time"

	"github.com/campuskit/campus-auth/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventLoginSucceeded   EventType = "login_succeeded"
	EventLoginFailed      EventType = "login_failed"
	EventLoginRateLimited EventType = "login_rate_limited"
)

// Event represents an authentication event emitted by services. Payloads
// carry no plaintext or hashed credentials.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// LoginSucceededPayload payload.
type LoginSucceededPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// LoginFailedPayload payload. Handle only; success and failure causes are
// indistinguishable here just as they are to the caller.
type LoginFailedPayload struct {
	Username string `json:"username"`
}

// LoginRateLimitedPayload payload.
type LoginRateLimitedPayload struct {
	Username string `json:"username"`
}
