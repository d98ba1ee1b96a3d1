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
	"github.com/classforge/engine/internal/inventory"
)

func TestHandleAcquireItem(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockInventoryService)
		expectedStatus int
	}{
		{
			name: "Success",
			requestBody: AcquireItemRequest{
				CharacterID: "char-1",
				ItemKey:     "scholars_helm",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("AcquireItem", mock.Anything, "char-1", "scholars_helm").
					Return(&domain.InventoryItem{
						ID:          "item-1",
						CharacterID: "char-1",
						Key:         "scholars_helm",
						Category:    domain.SlotHelmet,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown Definition",
			requestBody: AcquireItemRequest{
				CharacterID: "char-1",
				ItemKey:     "nonexistent",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("AcquireItem", mock.Anything, "char-1", "nonexistent").
					Return(nil, domain.ErrDefinitionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Archived Character",
			requestBody: AcquireItemRequest{
				CharacterID: "char-1",
				ItemKey:     "scholars_helm",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("AcquireItem", mock.Anything, "char-1", "scholars_helm").
					Return(nil, domain.ErrCharacterArchived)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Missing Item Key",
			requestBody:    AcquireItemRequest{CharacterID: "char-1"},
			setupMocks:     func(m *MockInventoryService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockInventoryService)
			tt.setupMocks(mockSvc)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/inventory/acquire", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			HandleAcquireItem(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleEquipItem(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockInventoryService)
		expectedStatus int
	}{
		{
			name: "Success",
			requestBody: EquipItemRequest{
				CharacterID: "char-1",
				ItemID:      "item-1",
				Slot:        "helmet",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("EquipItem", mock.Anything, "char-1", "item-1", domain.SlotHelmet).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid Slot",
			requestBody: EquipItemRequest{
				CharacterID: "char-1",
				ItemID:      "item-1",
				Slot:        "backpack",
			},
			setupMocks:     func(m *MockInventoryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Slot Mismatch",
			requestBody: EquipItemRequest{
				CharacterID: "char-1",
				ItemID:      "item-1",
				Slot:        "weapon",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("EquipItem", mock.Anything, "char-1", "item-1", domain.SlotWeapon).
					Return(domain.ErrSlotMismatch)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Level Requirement",
			requestBody: EquipItemRequest{
				CharacterID: "char-1",
				ItemID:      "item-1",
				Slot:        "weapon",
			},
			setupMocks: func(m *MockInventoryService) {
				m.On("EquipItem", mock.Anything, "char-1", "item-1", domain.SlotWeapon).
					Return(domain.ErrLevelRequirement)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockInventoryService)
			tt.setupMocks(mockSvc)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/inventory/equip", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			HandleEquipItem(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleUnequipItem(t *testing.T) {
	mockSvc := new(MockInventoryService)
	mockSvc.On("UnequipItem", mock.Anything, "char-1", "item-1").Return(nil)

	body, err := json.Marshal(UnequipItemRequest{CharacterID: "char-1", ItemID: "item-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/inventory/unequip", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	HandleUnequipItem(mockSvc)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgItemUnequippedSuccess)
}

func TestHandleSetEquipment(t *testing.T) {
	mockSvc := new(MockInventoryService)
	mockSvc.On("SetEquipmentConfiguration", mock.Anything, "char-1", []inventory.EquipUpdate{
		{ItemID: "item-1", Equip: false},
		{ItemID: "item-2", Slot: domain.SlotHelmet, Equip: true},
	}).Return(nil)

	body, err := json.Marshal(SetEquipmentRequest{
		CharacterID: "char-1",
		Updates: []EquipmentUpdateRequest{
			{ItemID: "item-1", Equip: false},
			{ItemID: "item-2", Slot: "helmet", Equip: true},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/inventory/equipment", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	HandleSetEquipment(mockSvc)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	mockSvc.AssertExpectations(t)
}

func TestHandleSetEquipment_EquipWithoutSlot(t *testing.T) {
	mockSvc := new(MockInventoryService)

	body, err := json.Marshal(SetEquipmentRequest{
		CharacterID: "char-1",
		Updates: []EquipmentUpdateRequest{
			{ItemID: "item-1", Equip: true},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/inventory/equipment", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	HandleSetEquipment(mockSvc)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertNotCalled(t, "SetEquipmentConfiguration", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSetEquipment_EmptyBatch(t *testing.T) {
	mockSvc := new(MockInventoryService)

	body, err := json.Marshal(SetEquipmentRequest{CharacterID: "char-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/inventory/equipment", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	HandleSetEquipment(mockSvc)(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetInventory(t *testing.T) {
	mockSvc := new(MockInventoryService)
	mockSvc.On("GetInventory", mock.Anything, "char-1").
		Return(&domain.Inventory{
			CharacterID: "char-1",
			Items:       []domain.InventoryItem{{ID: "item-1"}},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/inventory?character_id=char-1", nil)
	rr := httptest.NewRecorder()

	HandleGetInventory(mockSvc)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got domain.Inventory
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Items, 1)
}
