package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/selection"
)

func TestHandleSelectStudent(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockSelectionService)
		expectedStatus int
	}{
		{
			name: "Success",
			requestBody: SelectStudentRequest{
				ClassID:       "class-1",
				ExcludeRecent: 3,
			},
			setupMocks: func(m *MockSelectionService) {
				m.On("SelectRandom", mock.Anything, "class-1", selection.Options{ExcludeRecent: 3}).
					Return(&domain.SelectionRecord{
						ID:          "sel-1",
						ClassID:     "class-1",
						CharacterID: "char-2",
						StudentID:   "student-2",
						Method:      domain.SelectionMethodUniform,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "With Reward",
			requestBody: SelectStudentRequest{
				ClassID: "class-1",
				Reward:  &SelectionRewardRequest{XP: 25, Coins: 5},
			},
			setupMocks: func(m *MockSelectionService) {
				m.On("SelectRandom", mock.Anything, "class-1", selection.Options{
					Reward: &selection.RewardConfig{XP: 25, Coins: 5},
				}).Return(&domain.SelectionRecord{
					ID:          "sel-1",
					ClassID:     "class-1",
					CharacterID: "char-2",
					Method:      domain.SelectionMethodUniform,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Empty Pool",
			requestBody: SelectStudentRequest{ClassID: "class-1"},
			setupMocks: func(m *MockSelectionService) {
				m.On("SelectRandom", mock.Anything, "class-1", selection.Options{}).
					Return(nil, domain.ErrEmptyPool)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Missing Class ID",
			requestBody:    SelectStudentRequest{},
			setupMocks:     func(m *MockSelectionService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Exclusion Window Too Large",
			requestBody: SelectStudentRequest{
				ClassID:       "class-1",
				ExcludeRecent: 51,
			},
			setupMocks:     func(m *MockSelectionService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSelectionService)
			tt.setupMocks(mockSvc)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/selection/draw", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			HandleSelectStudent(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleRecentSelections(t *testing.T) {
	mockSvc := new(MockSelectionService)
	mockSvc.On("ListRecent", mock.Anything, "class-1", 5).
		Return([]domain.SelectionRecord{{ID: "sel-1"}, {ID: "sel-2"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/selection/recent?class_id=class-1&limit=5", nil)
	rr := httptest.NewRecorder()

	HandleRecentSelections(mockSvc)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Data []domain.SelectionRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Data, 2)
}

func TestHandleRecentSelections_MissingClassID(t *testing.T) {
	mockSvc := new(MockSelectionService)

	req := httptest.NewRequest(http.MethodGet, "/selection/recent", nil)
	rr := httptest.NewRecorder()

	HandleRecentSelections(mockSvc)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything, mock.Anything)
}
