package reward

import "time"

// Grant limits
const (
	// MaxXPPerGrant caps the experience a single grant may carry
	MaxXPPerGrant = 1000
)

// Level-up bonuses
const (
	// LightPerLevel is the max-light gained per level crossed
	LightPerLevel = 10

	// StatBonusLevelInterval grants +1 to every stat each time a level
	// divisible by this interval is reached
	StatBonusLevelInterval = 5
)

// Pending-key polling. A duplicate request whose original is still pending
// polls the idempotency row for the winner's committed result before giving
// up with a transient error.
const (
	PendingPollAttempts = 5
	PendingPollInterval = 50 * time.Millisecond
)

// Log message constants
const (
	LogMsgGrantApplied        = "Reward grant applied"
	LogMsgGrantReplayed       = "Reward grant replayed from stored result"
	LogMsgGrantInFlight       = "Reward grant still in flight after polling"
	LogMsgKeyConflict         = "Idempotency key reused for a different grant"
	LogMsgLevelUp             = "Character leveled up"
	LogMsgInsufficientBalance = "Debit rejected, balance too low"
	LogMsgInvalidGrant        = "Rejected invalid grant request"
)
