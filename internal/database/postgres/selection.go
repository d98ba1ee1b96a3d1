package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
)

// SelectionRepository implements the selection audit repository for PostgreSQL
type SelectionRepository struct {
	db *pgxpool.Pool
}

// NewSelectionRepository creates a new SelectionRepository
func NewSelectionRepository(db *pgxpool.Pool) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// ListEligible returns active characters in the class, excluding any that
// appear in the most recent excludeRecent selection records
func (r *SelectionRepository) ListEligible(ctx context.Context, classID string, excludeRecent int) ([]domain.Character, error) {
	cid, err := parseUUID("class id", classID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + characterColumns + ` FROM characters
		WHERE class_id = $1 AND archived_at IS NULL`
	args := []any{cid}

	if excludeRecent > 0 {
		query += `
		AND character_id NOT IN (
			SELECT character_id FROM selection_records
			WHERE class_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`
		args = append(args, excludeRecent)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible characters: %w", err)
	}
	defer rows.Close()

	var eligible []domain.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		eligible = append(eligible, *c)
	}
	return eligible, rows.Err()
}

// InsertRecord appends one selection audit row
func (r *SelectionRepository) InsertRecord(ctx context.Context, record *domain.SelectionRecord) error {
	classID, err := parseUUID("class id", record.ClassID)
	if err != nil {
		return err
	}
	characterID, err := parseUUID("character id", record.CharacterID)
	if err != nil {
		return err
	}
	studentID, err := parseUUID("student id", record.StudentID)
	if err != nil {
		return err
	}

	var recordID uuid.UUID
	err = r.db.QueryRow(ctx, `
		INSERT INTO selection_records (class_id, character_id, student_id, method, reward_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING selection_record_id, created_at`,
		classID, characterID, studentID, record.Method, record.RewardKey).
		Scan(&recordID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert selection record: %w", err)
	}

	record.ID = recordID.String()
	return nil
}

// ListRecent returns the newest selection records for a class
func (r *SelectionRepository) ListRecent(ctx context.Context, classID string, limit int) ([]domain.SelectionRecord, error) {
	cid, err := parseUUID("class id", classID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT selection_record_id, class_id, character_id, student_id, method, reward_key, created_at
		FROM selection_records
		WHERE class_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, cid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection records: %w", err)
	}
	defer rows.Close()

	var records []domain.SelectionRecord
	for rows.Next() {
		var rec domain.SelectionRecord
		err := rows.Scan(&rec.ID, &rec.ClassID, &rec.CharacterID, &rec.StudentID,
			&rec.Method, &rec.RewardKey, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan selection record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
