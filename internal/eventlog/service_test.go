package eventlog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
)

// MockRepository is a mock implementation of the event audit repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogEvent(ctx context.Context, eventType string, characterID *string, payload []byte) error {
	args := m.Called(ctx, eventType, characterID, payload)
	return args.Error(0)
}

func (m *MockRepository) GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventRecord), args.Error(1)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func TestSubscribe_CapturesPublishedEvents(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	characterID := "a8098c1a-f86e-11da-bd1a-00112444be1e"
	repo.On("LogEvent", mock.Anything, string(event.ItemEquipped), mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == characterID
	}), mock.Anything).Return(nil)

	evt := event.NewItemEquippedEvent(characterID, "item-1", "novice_helm", domain.SlotHelmet)
	require.NoError(t, bus.Publish(context.Background(), evt))

	repo.AssertExpectations(t)
}

func TestSubscribe_CoversAllEngineEventTypes(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	repo.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	characterID := "a8098c1a-f86e-11da-bd1a-00112444be1e"
	events := []event.Event{
		event.NewXPGrantedEvent(characterID, "class-1", domain.GrantResult{XPGranted: 10}, "key-1"),
		event.NewLevelUpEvent(characterID, "class-1", domain.GrantResult{PreviousLevel: 1, NewLevel: 2}),
		event.NewItemEquippedEvent(characterID, "item-1", "novice_helm", domain.SlotHelmet),
		event.NewItemUnequippedEvent(characterID, "item-1", "novice_helm", domain.SlotHelmet),
		event.NewStudentSelectedEvent(domain.SelectionRecord{ClassID: "class-1", CharacterID: characterID, StudentID: "student-1", Method: domain.SelectionMethodUniform}),
	}
	for _, evt := range events {
		require.NoError(t, bus.Publish(context.Background(), evt))
	}

	repo.AssertNumberOfCalls(t, "LogEvent", len(events))
}

func TestHandleEvent_StoresPayloadJSON(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	var stored []byte
	repo.On("LogEvent", mock.Anything, string(event.ExperienceGranted), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(3).([]byte)
		}).Return(nil)

	characterID := "a8098c1a-f86e-11da-bd1a-00112444be1e"
	evt := event.NewXPGrantedEvent(characterID, "class-1", domain.GrantResult{XPGranted: 25, NewXP: 125}, "key-1")
	require.NoError(t, bus.Publish(context.Background(), evt))

	var payload event.XPGrantedPayloadV1
	require.NoError(t, json.Unmarshal(stored, &payload))
	assert.Equal(t, characterID, payload.CharacterID)
	assert.Equal(t, int64(25), payload.XPGranted)
	assert.Equal(t, int64(125), payload.NewXP)
}

func TestHandleEvent_RepositoryErrorPropagates(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	repo.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	evt := event.NewItemEquippedEvent("a8098c1a-f86e-11da-bd1a-00112444be1e", "item-1", "novice_helm", domain.SlotHelmet)
	err := bus.Publish(context.Background(), evt)
	assert.Error(t, err)
}

func TestHandleEvent_UnencodablePayloadSkipped(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	bus := event.NewMemoryBus()
	require.NoError(t, svc.Subscribe(bus))

	evt := event.Event{
		Version: "1.0",
		Type:    event.ExperienceGranted,
		Payload: make(chan int),
	}
	assert.NoError(t, bus.Publish(context.Background(), evt))
	repo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEvents(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	eventType := string(event.LevelUp)
	filter := domain.EventFilter{EventType: &eventType, Limit: 10}
	expected := []domain.EventRecord{
		{ID: 1, EventType: eventType, CreatedAt: time.Now()},
	}
	repo.On("GetEvents", mock.Anything, filter).Return(expected, nil)

	records, err := svc.GetEvents(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, expected, records)
}

func TestCleanupOldEvents_DefaultsRetention(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CleanupOldEvents", mock.Anything, DefaultRetentionDays).Return(int64(3), nil)

	count, err := svc.CleanupOldEvents(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCleanupOldEvents_ExplicitRetention(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("CleanupOldEvents", mock.Anything, 30).Return(int64(12), nil)

	count, err := svc.CleanupOldEvents(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
