package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Event types published and consumed by this service.
const (
	AccountCreatedEvent = "account.created"
	AccountDeletedEvent = "account.deleted"
)

// Event is the wire envelope for all service events.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// EventPublisher publishes events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// AccountEvent is the payload for account lifecycle events coming from
// the identity provider.
type AccountEvent struct {
	UID            string `json:"uid"`
	Email          string `json:"email"`
	DisplayName    string `json:"displayName"`
	PhoneNumber    string `json:"phoneNumber"`
	Disabled       bool   `json:"disabled"`
	CreationTime   string `json:"creationTime,omitempty"`
	LastSignInTime string `json:"lastSignInTime,omitempty"`
}

// DecodeData unmarshals the envelope's Data field into dest. After a
// round trip through the broker, Data is a generic map; re-marshaling
// keeps one decode path for both in-process and consumed events.
func DecodeData(event Event, dest interface{}) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal event data: %w", err)
	}
	return nil
}
