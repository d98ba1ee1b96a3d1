package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"

	// PgErrorCodeCheckViolation is the PostgreSQL error code for check constraint violations
	PgErrorCodeCheckViolation = "23514"
)

// characterColumns is the select list shared by every character read
const characterColumns = `character_id, student_id, class_id, level, xp, light, max_light,
	discipline, intellect, strength, charisma, archived_at, created_at, updated_at`

// inventoryItemColumns is the select list shared by every inventory read,
// joined against item_definitions for key/category/min_level
const inventoryItemColumns = `i.inventory_item_id, i.character_id, i.item_definition_id,
	d.item_key, d.category, d.min_level,
	i.discipline_bonus, i.intellect_bonus, i.strength_bonus, i.charisma_bonus,
	i.equipped, i.slot, i.acquired_at`

// ledgerEntryColumns is the select list shared by every ledger read
const ledgerEntryColumns = `entry_id, character_id, class_id, direction, amount, reason,
	reference_type, reference_id, actor_id, created_at`
