package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
)

// LedgerRepository implements the read-side ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetBalance returns the cached account balance
func (r *LedgerRepository) GetBalance(ctx context.Context, characterID string) (int64, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.db.QueryRow(ctx,
		`SELECT balance FROM ledger_accounts WHERE character_id = $1`, id).
		Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// GetStatement returns the cached balance and matching entries. Both reads
// run in one repeatable-read transaction so they see the same snapshot; at
// read committed each statement would snapshot separately and a grant
// committing in between could desync balance and entries.
func (r *LedgerRepository) GetStatement(ctx context.Context, characterID string, filter domain.LedgerFilter) (*domain.Statement, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	stmt := &domain.Statement{CharacterID: characterID}
	err = tx.QueryRow(ctx,
		`SELECT balance FROM ledger_accounts WHERE character_id = $1`, id).
		Scan(&stmt.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE character_id = $1`)

	args := []any{id}
	argNum := 2

	if filter.Reason != nil {
		fmt.Fprintf(&queryBuilder, " AND reason = $%d", argNum)
		args = append(args, *filter.Reason)
		argNum++
	}
	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}
	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := tx.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		stmt.Entries = append(stmt.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}
	return stmt, nil
}

// GetConservation recomputes credits minus debits and pairs it with the
// cached balance, all inside a single query so both come from one snapshot
func (r *LedgerRepository) GetConservation(ctx context.Context, characterID string) (*domain.ConservationReport, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	report := &domain.ConservationReport{CharacterID: characterID}
	err = r.db.QueryRow(ctx, `
		SELECT a.balance,
			COALESCE(SUM(CASE WHEN e.direction = 'credit' THEN e.amount ELSE -e.amount END), 0)
		FROM ledger_accounts a
		LEFT JOIN ledger_entries e ON e.character_id = a.character_id
		WHERE a.character_id = $1
		GROUP BY a.balance`, id).
		Scan(&report.CachedBalance, &report.DerivedSum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to compute conservation: %w", err)
	}

	report.Consistent = report.CachedBalance == report.DerivedSum
	return report, nil
}

// ListAccountCharacterIDs pages through ledger accounts for audit sweeps
func (r *LedgerRepository) ListAccountCharacterIDs(ctx context.Context, limit, offset int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT character_id FROM ledger_accounts ORDER BY character_id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger accounts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
