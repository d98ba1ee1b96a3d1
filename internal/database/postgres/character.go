package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
)

// CharacterRepository implements the character repository for PostgreSQL
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CreateCharacter inserts a character and its ledger account in one
// transaction. The (student, class) unique constraint maps to ErrConflict
// semantics at the service layer via ErrInvalidArgument.
func (r *CharacterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	studentID, err := parseUUID("student id", character.StudentID)
	if err != nil {
		return err
	}
	classID, err := parseUUID("class id", character.ClassID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	query := `
		INSERT INTO characters (student_id, class_id, level, xp, light, max_light,
			discipline, intellect, strength, charisma)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING character_id, created_at, updated_at`

	var characterID uuid.UUID
	err = tx.QueryRow(ctx, query, studentID, classID,
		character.Level, character.XP, character.Light, character.MaxLight,
		character.Stats.Discipline, character.Stats.Intellect,
		character.Stats.Strength, character.Stats.Charisma).
		Scan(&characterID, &character.CreatedAt, &character.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: character already exists for student %s in class %s",
				domain.ErrInvalidArgument, character.StudentID, character.ClassID)
		}
		return fmt.Errorf("failed to insert character: %w", err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO ledger_accounts (character_id, balance) VALUES ($1, 0)`, characterID)
	if err != nil {
		return fmt.Errorf("failed to create ledger account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit character creation: %w", err)
	}

	character.ID = characterID.String()
	return nil
}

// GetCharacter retrieves a character by ID
func (r *CharacterRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	return getCharacter(ctx, r.db, characterID)
}

// GetCharacterByStudent retrieves the character for a (student, class) pair
func (r *CharacterRepository) GetCharacterByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	sid, err := parseUUID("student id", studentID)
	if err != nil {
		return nil, err
	}
	cid, err := parseUUID("class id", classID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters WHERE student_id = $1 AND class_id = $2`
	return scanCharacter(r.db.QueryRow(ctx, query, sid, cid))
}

// ListClassRoster returns every non-archived character in a class
func (r *CharacterRepository) ListClassRoster(ctx context.Context, classID string) ([]domain.Character, error) {
	cid, err := parseUUID("class id", classID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + characterColumns + ` FROM characters
		WHERE class_id = $1 AND archived_at IS NULL
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to query class roster: %w", err)
	}
	defer rows.Close()

	var roster []domain.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		roster = append(roster, *c)
	}
	return roster, rows.Err()
}

// ArchiveCharacter marks a character as archived; archived characters reject
// further grants and equips
func (r *CharacterRepository) ArchiveCharacter(ctx context.Context, characterID string) error {
	id, err := parseUUID("character id", characterID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE characters SET archived_at = NOW(), updated_at = NOW()
		 WHERE character_id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to archive character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
