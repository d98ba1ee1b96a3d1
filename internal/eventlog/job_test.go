package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
)

// MockService is a mock implementation of the event audit service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockService) GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func TestCleanupJob_Process(t *testing.T) {
	svc := new(MockService)
	svc.On("CleanupOldEvents", mock.Anything, 30).Return(int64(7), nil)

	job := NewCleanupJob(svc, 30)
	err := job.Process(context.Background())

	assert.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestCleanupJob_ProcessError(t *testing.T) {
	svc := new(MockService)
	svc.On("CleanupOldEvents", mock.Anything, 30).Return(int64(0), assert.AnError)

	job := NewCleanupJob(svc, 30)
	err := job.Process(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
