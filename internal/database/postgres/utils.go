package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseUUID parses an opaque string ID into a uuid.UUID with a consistent
// error message.
func parseUUID(field, id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return u, nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// rowQuerier is satisfied by pgxpool.Pool and pgx.Tx, letting scan helpers
// run against either.
type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var (
		c           domain.Character
		characterID uuid.UUID
		studentID   uuid.UUID
		classID     uuid.UUID
		archivedAt  *time.Time
	)

	err := row.Scan(&characterID, &studentID, &classID, &c.Level, &c.XP, &c.Light, &c.MaxLight,
		&c.Stats.Discipline, &c.Stats.Intellect, &c.Stats.Strength, &c.Stats.Charisma,
		&archivedAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}

	c.ID = characterID.String()
	c.StudentID = studentID.String()
	c.ClassID = classID.String()
	c.ArchivedAt = archivedAt
	return &c, nil
}

func getCharacter(ctx context.Context, q rowQuerier, characterID string) (*domain.Character, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1`
	return scanCharacter(q.QueryRow(ctx, query, id))
}

func scanInventoryItem(rows pgx.Rows) (domain.InventoryItem, error) {
	var (
		item   domain.InventoryItem
		itemID uuid.UUID
		charID uuid.UUID
		slot   *string
	)

	err := rows.Scan(&itemID, &charID, &item.DefinitionID, &item.Key, &item.Category, &item.MinLevel,
		&item.Bonuses.Discipline, &item.Bonuses.Intellect, &item.Bonuses.Strength, &item.Bonuses.Charisma,
		&item.Equipped, &slot, &item.AcquiredAt)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("failed to scan inventory item: %w", err)
	}

	item.ID = itemID.String()
	item.CharacterID = charID.String()
	if slot != nil {
		s := domain.Slot(*slot)
		item.Slot = &s
	}
	return item, nil
}

func getInventory(ctx context.Context, q rowQuerier, characterID string) (*domain.Inventory, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items i
		JOIN item_definitions d ON d.item_definition_id = i.item_definition_id
		WHERE i.character_id = $1
		ORDER BY i.acquired_at`

	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inv := &domain.Inventory{CharacterID: characterID}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}
	return inv, rows.Err()
}

func scanLedgerEntry(rows pgx.Rows) (domain.LedgerEntry, error) {
	var (
		entry   domain.LedgerEntry
		entryID uuid.UUID
		charID  uuid.UUID
		classID uuid.UUID
		actorID *uuid.UUID
	)

	err := rows.Scan(&entryID, &charID, &classID, &entry.Direction, &entry.Amount, &entry.Reason,
		&entry.ReferenceType, &entry.ReferenceID, &actorID, &entry.CreatedAt)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("failed to scan ledger entry: %w", err)
	}

	entry.ID = entryID.String()
	entry.CharacterID = charID.String()
	entry.ClassID = classID.String()
	if actorID != nil {
		s := actorID.String()
		entry.ActorID = &s
	}
	return entry, nil
}
