package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Item defines the interface for item definition persistence
type Item interface {
	GetDefinitionByKey(ctx context.Context, key string) (*domain.ItemDefinition, error)
	GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error)
	ListDefinitions(ctx context.Context) ([]domain.ItemDefinition, error)
	InsertDefinition(ctx context.Context, definition *domain.ItemDefinition) (int, error)
}
