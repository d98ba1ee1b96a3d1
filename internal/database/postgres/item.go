package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
)

// ItemRepository implements the item definition repository for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemDefinitionColumns = `item_definition_id, item_key, display_name, COALESCE(description, ''),
	category, min_level, discipline_bonus, intellect_bonus, strength_bonus, charisma_bonus, created_at`

func scanItemDefinition(row pgx.Row) (*domain.ItemDefinition, error) {
	var def domain.ItemDefinition
	err := row.Scan(&def.ID, &def.Key, &def.Name, &def.Description, &def.Category, &def.MinLevel,
		&def.Bonuses.Discipline, &def.Bonuses.Intellect, &def.Bonuses.Strength, &def.Bonuses.Charisma,
		&def.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDefinitionNotFound
		}
		return nil, fmt.Errorf("failed to scan item definition: %w", err)
	}
	return &def, nil
}

// GetDefinitionByKey retrieves an item definition by its stable key
func (r *ItemRepository) GetDefinitionByKey(ctx context.Context, key string) (*domain.ItemDefinition, error) {
	query := `SELECT ` + itemDefinitionColumns + ` FROM item_definitions WHERE item_key = $1`
	return scanItemDefinition(r.db.QueryRow(ctx, query, key))
}

// GetDefinitionByID retrieves an item definition by surrogate ID
func (r *ItemRepository) GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error) {
	query := `SELECT ` + itemDefinitionColumns + ` FROM item_definitions WHERE item_definition_id = $1`
	return scanItemDefinition(r.db.QueryRow(ctx, query, id))
}

// ListDefinitions returns the full catalog
func (r *ItemRepository) ListDefinitions(ctx context.Context) ([]domain.ItemDefinition, error) {
	query := `SELECT ` + itemDefinitionColumns + ` FROM item_definitions ORDER BY item_key`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query item definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.ItemDefinition
	for rows.Next() {
		def, err := scanItemDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

// InsertDefinition adds a catalog entry and returns its ID
func (r *ItemRepository) InsertDefinition(ctx context.Context, definition *domain.ItemDefinition) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO item_definitions (item_key, display_name, description, category, min_level,
			discipline_bonus, intellect_bonus, strength_bonus, charisma_bonus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING item_definition_id`,
		definition.Key, definition.Name, definition.Description, definition.Category, definition.MinLevel,
		definition.Bonuses.Discipline, definition.Bonuses.Intellect,
		definition.Bonuses.Strength, definition.Bonuses.Charisma).
		Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: item key %s already exists", domain.ErrInvalidArgument, definition.Key)
		}
		return 0, fmt.Errorf("failed to insert item definition: %w", err)
	}

	definition.ID = id
	return id, nil
}
