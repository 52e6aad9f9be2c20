// Package event publishes console mutation events for auditing.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Channel is the broker channel mutation events are published on.
const Channel = "console.mutations"

type EventType string

// Event records one successful mutation.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	Entity     string                 `json:"entity"`
	Action     string                 `json:"action"`
	RecordID   int64                  `json:"record_id,omitempty"`
	ItemID     int64                  `json:"item_id,omitempty"`
	ActorID    string                 `json:"actor_id,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
	Changes    map[string]interface{} `json:"changes,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// New fills in the identity fields of an event.
func New(entity, action string, recordID int64) Event {
	return Event{
		ID:         uuid.New(),
		Type:       EventType(entity + "." + action),
		Entity:     entity,
		Action:     action,
		RecordID:   recordID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event)
}
