package service

import (
	"context"
	"time"
)

// Credential event types.
const (
	EventCredentialRegistered = "credential.registered"
	EventCredentialChanged    = "credential.changed"
)

// CredentialEvent announces a change to a user's stored credential.
// It never carries the digest or the salt position.
type CredentialEvent struct {
	RequestID  string    `json:"request_id,omitempty"`
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	PublishCredentialEvent(ctx context.Context, event *CredentialEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
