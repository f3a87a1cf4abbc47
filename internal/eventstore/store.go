package eventstore

import (
	"context"
	"time"
)

// StreamSystem is the stream id for system-wide events such as today changes.
const StreamSystem = "system"

// Store defines the interface for persisting and retrieving events.
type Store interface {
	// Append adds a new event to the store.
	Append(ctx context.Context, streamID, eventType string, payload []byte, metadata map[string]string) error

	// GetByStreamID retrieves all events for a specific stream.
	GetByStreamID(ctx context.Context, streamID string) ([]Event, error)

	// GetRange retrieves events within a time range.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)
}
