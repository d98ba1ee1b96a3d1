package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/repository"
)

// MockRepository implements repository.Inventory for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockRepository) GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockRepository) InsertItem(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InventoryTx), args.Error(1)
}

// MockTx implements repository.InventoryTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockTx) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func (m *MockTx) UpdateItemEquip(ctx context.Context, itemID string, equipped bool, slot *domain.Slot) error {
	args := m.Called(ctx, itemID, equipped, slot)
	return args.Error(0)
}

func (m *MockTx) UpdateCharacterStats(ctx context.Context, characterID string, stats domain.StatBlock) error {
	args := m.Called(ctx, characterID, stats)
	return args.Error(0)
}

// MockCharacters implements repository.Character for testing
type MockCharacters struct {
	mock.Mock
}

func (m *MockCharacters) CreateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacters) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) GetCharacterByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	args := m.Called(ctx, studentID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) ListClassRoster(ctx context.Context, classID string) ([]domain.Character, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacters) ArchiveCharacter(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}

// MockCatalog implements item.Service for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetDefinition(ctx context.Context, key string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) ListCatalog(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) CreateDefinition(ctx context.Context, definition *domain.ItemDefinition) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, definition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}
