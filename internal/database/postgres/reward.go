package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/repository"
)

// RewardRepository implements the reward repository for PostgreSQL
type RewardRepository struct {
	db *pgxpool.Pool
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// GetCharacter retrieves a character without locking
func (r *RewardRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	return getCharacter(ctx, r.db, characterID)
}

// GetRequest reads an idempotency record from the pool, outside any
// transaction, so a reservation loser can observe the winner's commit
func (r *RewardRepository) GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error) {
	return getRewardRequest(ctx, r.db, key)
}

// BeginTx starts a new reward grant transaction
func (r *RewardRepository) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &rewardTx{tx: tx}, nil
}

// rewardTx implements repository.RewardTx
type rewardTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *rewardTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *rewardTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// ReserveRequest inserts the idempotency record if absent. The unique key is
// the concurrency primitive: zero rows inserted means another request holds
// the key.
func (t *rewardTx) ReserveRequest(ctx context.Context, request domain.RewardRequest) (bool, error) {
	characterID, err := parseUUID("character id", request.CharacterID)
	if err != nil {
		return false, err
	}

	tag, err := t.tx.Exec(ctx, `
		INSERT INTO reward_requests (request_key, character_id, reward_type, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (request_key) DO NOTHING`,
		request.Key, characterID, request.RewardType, domain.RequestPending)
	if err != nil {
		return false, fmt.Errorf("failed to reserve reward request: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetRequest reads an idempotency record inside the transaction
func (t *rewardTx) GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error) {
	return getRewardRequest(ctx, t.tx, key)
}

// CompleteRequest stores the serialized grant result and marks the record done
func (t *rewardTx) CompleteRequest(ctx context.Context, key string, result []byte) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE reward_requests
		SET status = $1, result = $2, completed_at = NOW()
		WHERE request_key = $3 AND status = $4`,
		domain.RequestCompleted, result, key, domain.RequestPending)
	if err != nil {
		return fmt.Errorf("failed to complete reward request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s not pending", domain.ErrResultConflict, key)
	}
	return nil
}

// GetCharacterForUpdate locks the character row for the remainder of the
// transaction. Locking the character first establishes the lock order
// character -> account shared with the equip path.
func (t *rewardTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 FOR UPDATE`
	return scanCharacter(t.tx.QueryRow(ctx, query, id))
}

// UpdateCharacterProgress persists xp, level, light, and stats
func (t *rewardTx) UpdateCharacterProgress(ctx context.Context, character domain.Character) error {
	id, err := parseUUID("character id", character.ID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE characters
		SET xp = $1, level = $2, light = $3, max_light = $4,
			discipline = $5, intellect = $6, strength = $7, charisma = $8,
			updated_at = NOW()
		WHERE character_id = $9`,
		character.XP, character.Level, character.Light, character.MaxLight,
		character.Stats.Discipline, character.Stats.Intellect,
		character.Stats.Strength, character.Stats.Charisma, id)
	if err != nil {
		return fmt.Errorf("failed to update character progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

// GetBalanceForUpdate locks the ledger account row and returns the cached balance
func (t *rewardTx) GetBalanceForUpdate(ctx context.Context, characterID string) (int64, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return 0, err
	}

	var balance int64
	err = t.tx.QueryRow(ctx,
		`SELECT balance FROM ledger_accounts WHERE character_id = $1 FOR UPDATE`, id).
		Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to lock ledger account: %w", err)
	}
	return balance, nil
}

// AppendLedgerEntry writes one immutable ledger row
func (t *rewardTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	characterID, err := parseUUID("character id", entry.CharacterID)
	if err != nil {
		return err
	}
	classID, err := parseUUID("class id", entry.ClassID)
	if err != nil {
		return err
	}

	var actorID any
	if entry.ActorID != nil {
		id, err := parseUUID("actor id", *entry.ActorID)
		if err != nil {
			return err
		}
		actorID = id
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO ledger_entries (character_id, class_id, direction, amount, reason,
			reference_type, reference_id, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		characterID, classID, entry.Direction, entry.Amount, entry.Reason,
		entry.ReferenceType, entry.ReferenceID, actorID)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// UpdateBalance writes the cached balance; callers must hold the account lock
func (t *rewardTx) UpdateBalance(ctx context.Context, characterID string, balance int64) error {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx,
		`UPDATE ledger_accounts SET balance = $1, updated_at = NOW() WHERE character_id = $2`,
		balance, id)
	if err != nil {
		return fmt.Errorf("failed to update cached balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func getRewardRequest(ctx context.Context, q rowQuerier, key string) (*domain.RewardRequest, error) {
	var (
		req         domain.RewardRequest
		characterID string
	)

	err := q.QueryRow(ctx, `
		SELECT request_key, character_id, reward_type, status, result, created_at, completed_at
		FROM reward_requests WHERE request_key = $1`, key).
		Scan(&req.Key, &characterID, &req.RewardType, &req.Status, &req.Result,
			&req.CreatedAt, &req.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reward request: %w", err)
	}

	req.CharacterID = characterID
	return &req, nil
}
