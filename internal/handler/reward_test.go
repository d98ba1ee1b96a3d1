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
)

func TestHandleGrantReward(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		headerKey      string
		setupMocks     func(*MockRewardService)
		expectedStatus int
	}{
		{
			name: "Success",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				XP:             150,
				Coins:          30,
				Reason:         domain.ReasonTeacherGrant,
				IdempotencyKey: "quiz-42:char-1:teacher_grant",
			},
			setupMocks: func(m *MockRewardService) {
				m.On("GrantReward", mock.Anything, mock.MatchedBy(func(req domain.GrantRequest) bool {
					return req.CharacterID == "char-1" &&
						req.IdempotencyKey == "quiz-42:char-1:teacher_grant"
				})).Return(&domain.GrantResult{
					CharacterID: "char-1",
					XPGranted:   150,
					NewLevel:    2,
					LeveledUp:   true,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Replay Returns OK",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				XP:             150,
				Reason:         domain.ReasonTeacherGrant,
				IdempotencyKey: "quiz-42:char-1:teacher_grant",
			},
			setupMocks: func(m *MockRewardService) {
				m.On("GrantReward", mock.Anything, mock.Anything).
					Return(&domain.GrantResult{
						CharacterID: "char-1",
						XPGranted:   150,
						Replayed:    true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Key From Header",
			requestBody: GrantRewardRequest{
				CharacterID: "char-1",
				XP:          10,
				Reason:      domain.ReasonTeacherGrant,
			},
			headerKey: "header-key-1",
			setupMocks: func(m *MockRewardService) {
				m.On("GrantReward", mock.Anything, mock.MatchedBy(func(req domain.GrantRequest) bool {
					return req.IdempotencyKey == "header-key-1"
				})).Return(&domain.GrantResult{CharacterID: "char-1", XPGranted: 10}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "XP Over Cap Rejected",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				XP:             1001,
				Reason:         domain.ReasonTeacherGrant,
				IdempotencyKey: "key-1",
			},
			setupMocks:     func(m *MockRewardService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Reason",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				XP:             10,
				IdempotencyKey: "key-1",
			},
			setupMocks:     func(m *MockRewardService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Insufficient Funds",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				Coins:          -500,
				Reason:         domain.ReasonPurchase,
				IdempotencyKey: "key-2",
			},
			setupMocks: func(m *MockRewardService) {
				m.On("GrantReward", mock.Anything, mock.Anything).
					Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Grant In Flight",
			requestBody: GrantRewardRequest{
				CharacterID:    "char-1",
				XP:             10,
				Reason:         domain.ReasonTeacherGrant,
				IdempotencyKey: "key-3",
			},
			setupMocks: func(m *MockRewardService) {
				m.On("GrantReward", mock.Anything, mock.Anything).
					Return(nil, domain.ErrGrantInFlight)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockRewardService)
			tt.setupMocks(mockSvc)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/reward/grant", bytes.NewReader(body))
			if tt.headerKey != "" {
				req.Header.Set(HeaderIdempotencyKey, tt.headerKey)
			}
			rr := httptest.NewRecorder()

			HandleGrantReward(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGrantReward_BodyKeyWinsOverHeader(t *testing.T) {
	mockSvc := new(MockRewardService)
	mockSvc.On("GrantReward", mock.Anything, mock.MatchedBy(func(req domain.GrantRequest) bool {
		return req.IdempotencyKey == "body-key"
	})).Return(&domain.GrantResult{CharacterID: "char-1"}, nil)

	body, err := json.Marshal(GrantRewardRequest{
		CharacterID:    "char-1",
		XP:             10,
		Reason:         domain.ReasonTeacherGrant,
		IdempotencyKey: "body-key",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/reward/grant", bytes.NewReader(body))
	req.Header.Set(HeaderIdempotencyKey, "header-key")
	rr := httptest.NewRecorder()

	HandleGrantReward(mockSvc)(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	mockSvc.AssertExpectations(t)
}
