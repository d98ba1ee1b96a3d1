package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classforge/engine/internal/domain"
)

// EventLogRepository implements the event audit repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new EventLogRepository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// LogEvent appends one audit row
func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, characterID *string, payload []byte) error {
	var cid *uuid.UUID
	if characterID != nil {
		id, err := parseUUID("character id", *characterID)
		if err != nil {
			return err
		}
		cid = &id
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO event_log (event_type, character_id, payload) VALUES ($1, $2, $3)`,
		eventType, cid, payload)
	if err != nil {
		return fmt.Errorf("failed to insert event log row: %w", err)
	}
	return nil
}

// GetEvents retrieves audit rows matching the filter, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT event_id, event_type, character_id, payload, created_at
		FROM event_log WHERE 1=1`)

	var args []any
	argNum := 1

	if filter.CharacterID != nil {
		id, err := parseUUID("character id", *filter.CharacterID)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&queryBuilder, " AND character_id = $%d", argNum)
		args = append(args, id)
		argNum++
	}
	if filter.EventType != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, *filter.EventType)
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

	queryBuilder.WriteString(" ORDER BY created_at DESC, event_id DESC")
	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log: %w", err)
	}
	defer rows.Close()

	var records []domain.EventRecord
	for rows.Next() {
		var record domain.EventRecord
		var cid *uuid.UUID
		if err := rows.Scan(&record.ID, &record.EventType, &cid, &record.Payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event log row: %w", err)
		}
		if cid != nil {
			s := cid.String()
			record.CharacterID = &s
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log rows: %w", err)
	}
	return records, nil
}

// CleanupOldEvents removes rows older than retentionDays
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM event_log WHERE created_at < NOW() - make_interval(days => $1)`,
		retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old event log rows: %w", err)
	}
	return tag.RowsAffected(), nil
}
