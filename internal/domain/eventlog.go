package domain

import (
	"encoding/json"
	"time"
)

// EventRecord is one immutable row in the event audit log.
type EventRecord struct {
	ID          int64           `json:"id"`
	EventType   string          `json:"event_type"`
	CharacterID *string         `json:"character_id,omitempty"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EventFilter narrows an audit log query. Nil fields match everything.
type EventFilter struct {
	CharacterID *string
	EventType   *string
	Since       *time.Time
	Until       *time.Time
	Limit       int
}
