package domain

import "time"

// Direction marks a ledger entry as a credit or a debit.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Reason codes recorded on ledger entries.
const (
	ReasonTeacherGrant = "teacher_grant"
	ReasonLevelUp      = "level_up"
	ReasonRandomDraw   = "random_draw"
	ReasonPurchase     = "purchase"
	ReasonAdminAdjust  = "admin_adjust"
)

// LedgerEntry is one immutable row in the append-only currency ledger.
// The cached account balance must always equal the sum of credits minus
// debits over these rows.
type LedgerEntry struct {
	ID            string    `json:"id"`
	CharacterID   string    `json:"character_id"`
	ClassID       string    `json:"class_id"`
	Direction     Direction `json:"direction"`
	Amount        int64     `json:"amount"` // always positive; direction carries the sign
	Reason        string    `json:"reason"`
	ReferenceType *string   `json:"reference_type,omitempty"`
	ReferenceID   *string   `json:"reference_id,omitempty"`
	ActorID       *string   `json:"actor_id,omitempty"` // nil for system-generated entries
	CreatedAt     time.Time `json:"created_at"`
}

// Signed returns the entry amount with the direction applied.
func (e LedgerEntry) Signed() int64 {
	if e.Direction == DirectionDebit {
		return -e.Amount
	}
	return e.Amount
}

// LedgerFilter narrows statement queries.
type LedgerFilter struct {
	CharacterID *string
	ClassID     *string
	Reason      *string
	Since       *time.Time
	Until       *time.Time
	Limit       int
}

// Statement is a consistent snapshot of an account: the cached balance and
// the entries it was derived from, read at the same instant.
type Statement struct {
	CharacterID string        `json:"character_id"`
	Balance     int64         `json:"balance"`
	Entries     []LedgerEntry `json:"entries"`
}

// ConservationReport is the outcome of recomputing an account balance from
// its ledger entries.
type ConservationReport struct {
	CharacterID   string `json:"character_id"`
	CachedBalance int64  `json:"cached_balance"`
	DerivedSum    int64  `json:"derived_sum"`
	Consistent    bool   `json:"consistent"`
}
