package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/inventory"
	"github.com/classforge/engine/internal/logger"
)

type AcquireItemRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	ItemKey     string `json:"item_key" validate:"required,max=100"`
}

// HandleAcquireItem mints an item from the catalog into a character's inventory
func HandleAcquireItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AcquireItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Acquire item"); err != nil {
			return
		}

		acquired, err := svc.AcquireItem(r.Context(), req.CharacterID, req.ItemKey)
		if err != nil {
			respondServiceError(w, r, "Acquire item", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item acquired",
			"character_id", req.CharacterID,
			"item_key", req.ItemKey,
			"item_id", acquired.ID)

		respondJSON(w, http.StatusCreated, acquired)
	}
}

type EquipItemRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	ItemID      string `json:"item_id" validate:"required"`
	Slot        string `json:"slot" validate:"required,slot"`
}

// HandleEquipItem equips an owned item into a slot, displacing any occupant
func HandleEquipItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EquipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		slot := domain.Slot(strings.ToLower(req.Slot))
		if err := svc.EquipItem(r.Context(), req.CharacterID, req.ItemID, slot); err != nil {
			respondServiceError(w, r, "Equip item", err)
			return
		}

		logger.FromContext(r.Context()).Info("Item equipped",
			"character_id", req.CharacterID,
			"item_id", req.ItemID,
			"slot", slot)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemEquippedSuccess})
	}
}

type UnequipItemRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	ItemID      string `json:"item_id" validate:"required"`
}

// HandleUnequipItem removes an item from its slot. Unequipping an item
// that is not equipped is a no-op.
func HandleUnequipItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnequipItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		if err := svc.UnequipItem(r.Context(), req.CharacterID, req.ItemID); err != nil {
			respondServiceError(w, r, "Unequip item", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUnequippedSuccess})
	}
}

type EquipmentUpdateRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Slot   string `json:"slot" validate:"omitempty,slot"`
	Equip  bool   `json:"equip"`
}

type SetEquipmentRequest struct {
	CharacterID string                   `json:"character_id" validate:"required"`
	Updates     []EquipmentUpdateRequest `json:"updates" validate:"required,min=1,max=20,dive"`
}

// HandleSetEquipment applies a batch of equip and unequip steps in a single
// transaction. The batch either fully applies or fully rolls back.
func HandleSetEquipment(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetEquipmentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set equipment"); err != nil {
			return
		}

		updates := make([]inventory.EquipUpdate, 0, len(req.Updates))
		for _, u := range req.Updates {
			if u.Equip && u.Slot == "" {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidSlot, u.Slot))
				return
			}
			updates = append(updates, inventory.EquipUpdate{
				ItemID: u.ItemID,
				Slot:   domain.Slot(strings.ToLower(u.Slot)),
				Equip:  u.Equip,
			})
		}

		if err := svc.SetEquipmentConfiguration(r.Context(), req.CharacterID, updates); err != nil {
			respondServiceError(w, r, "Set equipment", err)
			return
		}

		logger.FromContext(r.Context()).Info("Equipment configuration applied",
			"character_id", req.CharacterID,
			"updates", len(updates))

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEquipmentAppliedSuccess})
	}
}

// HandleGetInventory returns every item a character owns
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		inv, err := svc.GetInventory(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get inventory", err)
			return
		}

		respondJSON(w, http.StatusOK, inv)
	}
}
