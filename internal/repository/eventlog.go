package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// EventLog defines the interface for event audit persistence
type EventLog interface {
	// LogEvent appends one event row. Payload is the JSON-encoded event payload.
	LogEvent(ctx context.Context, eventType string, characterID *string, payload []byte) error

	// GetEvents retrieves audit rows matching the filter, newest first
	GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error)

	// CleanupOldEvents removes rows older than retentionDays and reports
	// how many were deleted
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
