package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetInventory retrieves a character's full inventory
func (r *InventoryRepository) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	return getInventory(ctx, r.db, characterID)
}

// GetItem retrieves one inventory item by ID
func (r *InventoryRepository) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	id, err := parseUUID("item id", itemID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items i
		JOIN item_definitions d ON d.item_definition_id = i.item_definition_id
		WHERE i.inventory_item_id = $1`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory item: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query inventory item: %w", err)
		}
		return nil, domain.ErrItemNotFound
	}

	item, err := scanInventoryItem(rows)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// InsertItem records an acquisition, snapshotting the definition's bonuses
// onto the inventory row
func (r *InventoryRepository) InsertItem(ctx context.Context, item *domain.InventoryItem) error {
	characterID, err := parseUUID("character id", item.CharacterID)
	if err != nil {
		return err
	}

	var itemID uuid.UUID
	err = r.db.QueryRow(ctx, `
		INSERT INTO inventory_items (character_id, item_definition_id,
			discipline_bonus, intellect_bonus, strength_bonus, charisma_bonus)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING inventory_item_id, acquired_at`,
		characterID, item.DefinitionID,
		item.Bonuses.Discipline, item.Bonuses.Intellect,
		item.Bonuses.Strength, item.Bonuses.Charisma).
		Scan(&itemID, &item.AcquiredAt)
	if err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}

	item.ID = itemID.String()
	return nil
}

// BeginTx starts a new equip transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &inventoryTx{tx: tx}, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *inventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetCharacterForUpdate locks the character row, serializing concurrent
// equips and grants on the same character
func (t *inventoryTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE character_id = $1 FOR UPDATE`
	return scanCharacter(t.tx.QueryRow(ctx, query, id))
}

// GetInventory reads the inventory inside the transaction
func (t *inventoryTx) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, characterID)
}

// UpdateItemEquip flips the equipped flag and slot on one item. The partial
// unique index on (character_id, slot) WHERE equipped backs the
// one-item-per-slot invariant even if a bug slips past the row lock.
func (t *inventoryTx) UpdateItemEquip(ctx context.Context, itemID string, equipped bool, slot *domain.Slot) error {
	id, err := parseUUID("item id", itemID)
	if err != nil {
		return err
	}

	var slotValue any
	if slot != nil {
		slotValue = string(*slot)
	}

	tag, err := t.tx.Exec(ctx,
		`UPDATE inventory_items SET equipped = $1, slot = $2 WHERE inventory_item_id = $3`,
		equipped, slotValue, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: slot already occupied", domain.ErrPreconditionFailed)
		}
		return fmt.Errorf("failed to update equip state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// UpdateCharacterStats writes the aggregate stat block
func (t *inventoryTx) UpdateCharacterStats(ctx context.Context, characterID string, stats domain.StatBlock) error {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return err
	}

	tag, err := t.tx.Exec(ctx, `
		UPDATE characters
		SET discipline = $1, intellect = $2, strength = $3, charisma = $4, updated_at = NOW()
		WHERE character_id = $5`,
		stats.Discipline, stats.Intellect, stats.Strength, stats.Charisma, id)
	if err != nil {
		return fmt.Errorf("failed to update character stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
