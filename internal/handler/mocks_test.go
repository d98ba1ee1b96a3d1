package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/inventory"
	"github.com/classforge/engine/internal/selection"
)

type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) Create(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	args := m.Called(ctx, studentID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) Get(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) GetByStudent(ctx context.Context, studentID, classID string) (*domain.Character, error) {
	args := m.Called(ctx, studentID, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) ListRoster(ctx context.Context, classID string) ([]domain.Character, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterService) Archive(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}

type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) GrantReward(ctx context.Context, req domain.GrantRequest) (*domain.GrantResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GrantResult), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) AcquireItem(ctx context.Context, characterID, itemKey string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, characterID, itemKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryService) EquipItem(ctx context.Context, characterID, itemID string, slot domain.Slot) error {
	args := m.Called(ctx, characterID, itemID, slot)
	return args.Error(0)
}

func (m *MockInventoryService) UnequipItem(ctx context.Context, characterID, itemID string) error {
	args := m.Called(ctx, characterID, itemID)
	return args.Error(0)
}

func (m *MockInventoryService) SetEquipmentConfiguration(ctx context.Context, characterID string, updates []inventory.EquipUpdate) error {
	args := m.Called(ctx, characterID, updates)
	return args.Error(0)
}

func (m *MockInventoryService) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) GetDefinition(ctx context.Context, key string) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockItemService) GetDefinitionByID(ctx context.Context, id int) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockItemService) ListCatalog(ctx context.Context) ([]domain.ItemDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemDefinition), args.Error(1)
}

func (m *MockItemService) CreateDefinition(ctx context.Context, definition *domain.ItemDefinition) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, definition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, characterID string) (int64, error) {
	args := m.Called(ctx, characterID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetStatement(ctx context.Context, characterID string, filter domain.LedgerFilter) (*domain.Statement, error) {
	args := m.Called(ctx, characterID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockLedgerService) VerifyConservation(ctx context.Context, characterID string) (*domain.ConservationReport, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConservationReport), args.Error(1)
}

type MockSelectionService struct {
	mock.Mock
}

func (m *MockSelectionService) SelectRandom(ctx context.Context, classID string, opts selection.Options) (*domain.SelectionRecord, error) {
	args := m.Called(ctx, classID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SelectionRecord), args.Error(1)
}

func (m *MockSelectionService) ListRecent(ctx context.Context, classID string, limit int) ([]domain.SelectionRecord, error) {
	args := m.Called(ctx, classID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SelectionRecord), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockEventLogService) GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

type MockPool struct {
	mock.Mock
}

func (m *MockPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPool) Close() {
	m.Called()
}
