package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Selection defines the interface for selection audit persistence
type Selection interface {
	// ListEligible returns active characters in the class, excluding any
	// that appear in the most recent excludeRecent selection records
	ListEligible(ctx context.Context, classID string, excludeRecent int) ([]domain.Character, error)
	InsertRecord(ctx context.Context, record *domain.SelectionRecord) error
	ListRecent(ctx context.Context, classID string, limit int) ([]domain.SelectionRecord, error)
}
