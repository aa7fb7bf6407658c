package service

import (
	"context"
	"time"
)

// Account event types.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventFaceChecked    = "face.checked"
)

// AccountEvent is emitted after an account operation completes.
type AccountEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	UserID     string    `json:"user_id,omitempty"`
	Email      string    `json:"email"`
	RemoteIP   string    `json:"remote_ip,omitempty"`
	Method     string    `json:"method,omitempty"` // "password" or "face" for logins
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account event for async consumers.
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
