package domain

import "time"

// RequestStatus tracks the lifecycle of an idempotency reservation.
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestCompleted RequestStatus = "completed"
)

// RewardRequest is the durable idempotency record for a reward grant. The
// key is unique; the row is reserved before the grant is applied and the
// serialized result is stored when the grant commits, both in the same
// transaction.
type RewardRequest struct {
	Key         string        `json:"key"`
	CharacterID string        `json:"character_id"`
	RewardType  string        `json:"reward_type"`
	Status      RequestStatus `json:"status"`
	Result      []byte        `json:"result,omitempty"` // serialized GrantResult once completed
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// GrantRequest describes a single reward grant. Coins may be negative for
// deductions; XP may not.
type GrantRequest struct {
	CharacterID    string  `json:"character_id"`
	XP             int64   `json:"xp"`
	Coins          int64   `json:"coins"`
	Reason         string  `json:"reason"`
	ReferenceType  *string `json:"reference_type,omitempty"`
	ReferenceID    *string `json:"reference_id,omitempty"`
	ActorID        *string `json:"actor_id,omitempty"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// LevelUpReward is the breakdown of bonuses applied when a grant crosses one
// or more level thresholds.
type LevelUpReward struct {
	MaxLightGained int       `json:"max_light_gained"`
	StatsGained    StatBlock `json:"stats_gained"`
}

// GrantResult is returned to the caller and stored verbatim on the
// idempotency record so replays observe the original outcome.
type GrantResult struct {
	CharacterID   string         `json:"character_id"`
	XPGranted     int64          `json:"xp_granted"`
	CoinsApplied  int64          `json:"coins_applied"`
	NewXP         int64          `json:"new_xp"`
	NewBalance    int64          `json:"new_balance"`
	PreviousLevel int            `json:"previous_level"`
	NewLevel      int            `json:"new_level"`
	LeveledUp     bool           `json:"leveled_up"`
	LevelUpReward *LevelUpReward `json:"level_up_reward,omitempty"`
	Replayed      bool           `json:"replayed"`
}
