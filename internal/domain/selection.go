package domain

import "time"

// Selection methods recorded on the audit trail.
const (
	SelectionMethodUniform = "uniform"
)

// SelectionRecord is one immutable row in the selection audit trail.
type SelectionRecord struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	CharacterID string    `json:"character_id"`
	StudentID   string    `json:"student_id"`
	Method      string    `json:"method"`
	RewardKey   *string   `json:"reward_key,omitempty"` // idempotency key of the granted reward, if any
	CreatedAt   time.Time `json:"created_at"`
}
