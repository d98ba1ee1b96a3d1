package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/classforge/engine/internal/domain"
)

func TestHandleGetEvents(t *testing.T) {
	svc := new(MockEventLogService)

	records := []domain.EventRecord{
		{ID: 2, EventType: "reward.xp_granted", Payload: json.RawMessage(`{"xp_granted":10}`), CreatedAt: time.Now()},
		{ID: 1, EventType: "reward.level_up", Payload: json.RawMessage(`{"new_level":2}`), CreatedAt: time.Now()},
	}
	svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f domain.EventFilter) bool {
		return f.CharacterID != nil && *f.CharacterID == "char-1" &&
			f.EventType != nil && *f.EventType == "reward.xp_granted" &&
			f.Limit == 10
	})).Return(records, nil)

	req := httptest.NewRequest(http.MethodGet, "/events?character_id=char-1&type=reward.xp_granted&limit=10", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Data)
	svc.AssertExpectations(t)
}

func TestHandleGetEvents_DefaultLimit(t *testing.T) {
	svc := new(MockEventLogService)
	svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f domain.EventFilter) bool {
		return f.CharacterID == nil && f.EventType == nil && f.Limit == defaultEventLimit
	})).Return([]domain.EventRecord{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleGetEvents_TimeWindow(t *testing.T) {
	svc := new(MockEventLogService)
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.On("GetEvents", mock.Anything, mock.MatchedBy(func(f domain.EventFilter) bool {
		return f.Since != nil && f.Since.Equal(since) && f.Until == nil
	})).Return([]domain.EventRecord{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/events?since=2026-03-01T00:00:00Z", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleGetEvents_InvalidTime(t *testing.T) {
	svc := new(MockEventLogService)

	req := httptest.NewRequest(http.MethodGet, "/events?since=yesterday", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetEvents", mock.Anything, mock.Anything)
}

func TestHandleGetEvents_InvalidLimit(t *testing.T) {
	svc := new(MockEventLogService)

	req := httptest.NewRequest(http.MethodGet, "/events?limit=-5", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetEvents", mock.Anything, mock.Anything)
}

func TestHandleGetEvents_ServiceError(t *testing.T) {
	svc := new(MockEventLogService)
	svc.On("GetEvents", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()
	HandleGetEvents(svc)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
