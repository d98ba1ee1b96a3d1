package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Ledger defines the read-side interface for the currency ledger. All
// methods are snapshot reads; mutations go through RewardTx.
type Ledger interface {
	GetBalance(ctx context.Context, characterID string) (int64, error)
	// GetStatement returns the cached balance and matching entries read in
	// a single query so they agree at one read timestamp
	GetStatement(ctx context.Context, characterID string, filter domain.LedgerFilter) (*domain.Statement, error)
	// GetConservation recomputes credits minus debits and pairs it with the
	// cached balance, both from the same snapshot
	GetConservation(ctx context.Context, characterID string) (*domain.ConservationReport, error)
	ListAccountCharacterIDs(ctx context.Context, limit, offset int) ([]string, error)
}
