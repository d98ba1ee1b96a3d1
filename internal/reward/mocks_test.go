package reward

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/repository"
)

// MockRepository implements repository.Reward for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockRepository) GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRequest), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.RewardTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.RewardTx), args.Error(1)
}

// MockTx implements repository.RewardTx for testing
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

func (m *MockTx) ReserveRequest(ctx context.Context, request domain.RewardRequest) (bool, error) {
	args := m.Called(ctx, request)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) GetRequest(ctx context.Context, key string) (*domain.RewardRequest, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RewardRequest), args.Error(1)
}

func (m *MockTx) CompleteRequest(ctx context.Context, key string, result []byte) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

func (m *MockTx) GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockTx) UpdateCharacterProgress(ctx context.Context, character domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockTx) GetBalanceForUpdate(ctx context.Context, characterID string) (int64, error) {
	args := m.Called(ctx, characterID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTx) UpdateBalance(ctx context.Context, characterID string, balance int64) error {
	args := m.Called(ctx, characterID, balance)
	return args.Error(0)
}
