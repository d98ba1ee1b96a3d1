package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/leveling"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/repository"
)

// Service defines the interface for item catalog operations
type Service interface {
	GetDefinition(ctx context.Context, key string) (*domain.ItemDefinition, error)
	GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error)
	ListCatalog(ctx context.Context) ([]domain.ItemDefinition, error)
	CreateDefinition(ctx context.Context, definition *domain.ItemDefinition) (*domain.ItemDefinition, error)
}

type service struct {
	repo  repository.Item
	cache *definitionCache
}

// NewService creates a new item catalog service
func NewService(repo repository.Item) Service {
	return &service{
		repo:  repo,
		cache: newDefinitionCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// GetDefinition looks up an item definition by its catalog key, cache-aside.
func (s *service) GetDefinition(ctx context.Context, key string) (*domain.ItemDefinition, error) {
	log := logger.FromContext(ctx)

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: item key is required", domain.ErrInvalidArgument)
	}

	if cached, ok := s.cache.Get(key); ok {
		log.Debug(LogMsgDefinitionCacheHit, "key", key)
		return cached, nil
	}

	definition, err := s.repo.GetDefinitionByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get item definition: %w", err)
	}

	s.cache.Set(key, definition)
	log.Debug(LogMsgDefinitionLoaded, "key", key)
	return definition, nil
}

func (s *service) GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error) {
	definition, err := s.repo.GetDefinitionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item definition: %w", err)
	}
	return definition, nil
}

func (s *service) ListCatalog(ctx context.Context) ([]domain.ItemDefinition, error) {
	log := logger.FromContext(ctx)

	definitions, err := s.repo.ListDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list item definitions: %w", err)
	}

	log.Debug(LogMsgCatalogListed, "count", len(definitions))
	return definitions, nil
}

// CreateDefinition validates and inserts a new catalog entry.
func (s *service) CreateDefinition(ctx context.Context, definition *domain.ItemDefinition) (*domain.ItemDefinition, error) {
	log := logger.FromContext(ctx)

	if err := validateDefinition(definition); err != nil {
		log.Warn(LogMsgInvalidDefinition, "error", err)
		return nil, err
	}

	id, err := s.repo.InsertDefinition(ctx, definition)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item definition: %w", err)
	}
	definition.ID = id

	// Drop any stale entry so the next read sees the stored row
	s.cache.Invalidate(definition.Key)

	log.Info(LogMsgDefinitionCreated, "key", definition.Key, "id", id)
	return definition, nil
}

func validateDefinition(definition *domain.ItemDefinition) error {
	if definition == nil {
		return fmt.Errorf("%w: definition is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(definition.Key) == "" {
		return fmt.Errorf("%w: item key is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(definition.Name) == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidArgument)
	}
	if !definition.Category.Valid() {
		return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidArgument, definition.Category)
	}
	if definition.MinLevel < 1 || definition.MinLevel > leveling.MaxLevel {
		return fmt.Errorf("%w: min level must be between 1 and %d", domain.ErrInvalidArgument, leveling.MaxLevel)
	}
	b := definition.Bonuses
	if b.Discipline < 0 || b.Intellect < 0 || b.Strength < 0 || b.Charisma < 0 {
		return fmt.Errorf("%w: stat bonuses must be non-negative", domain.ErrInvalidArgument)
	}
	return nil
}
