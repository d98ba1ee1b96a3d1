package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Reward defines the persistence surface of the reward dispatcher
type Reward interface {
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	// GetRequest reads an idempotency record outside any transaction, used
	// by losers of a reservation race to poll for the winner's committed
	// result
	GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error)
	BeginTx(ctx context.Context) (RewardTx, error)
}

// RewardTx defines the interface for reward grant transactions. A grant
// locks the character row first, then the ledger account; all writes commit
// or roll back together.
type RewardTx interface {
	Tx
	// ReserveRequest inserts the idempotency record if absent. Returns
	// false when the key already exists, meaning another request applied or
	// is applying this grant.
	ReserveRequest(ctx context.Context, request domain.RewardRequest) (bool, error)
	GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error)
	CompleteRequest(ctx context.Context, key string, result []byte) error

	GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error)
	UpdateCharacterProgress(ctx context.Context, character domain.Character) error

	GetBalanceForUpdate(ctx context.Context, characterID string) (int64, error)
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error
	UpdateBalance(ctx context.Context, characterID string, balance int64) error
}
