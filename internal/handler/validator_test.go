package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlot(t *testing.T) {
	type slotOnly struct {
		Slot string `validate:"omitempty,slot"`
	}

	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(slotOnly{Slot: "helmet"}))
	assert.NoError(t, v.ValidateStruct(slotOnly{Slot: "Weapon"}))
	assert.NoError(t, v.ValidateStruct(slotOnly{Slot: ""}))
	assert.Error(t, v.ValidateStruct(slotOnly{Slot: "backpack"}))
}

func TestFormatValidationError(t *testing.T) {
	type payload struct {
		CharacterID string `validate:"required"`
		Slot        string `validate:"slot"`
	}

	err := GetValidator().ValidateStruct(payload{Slot: "backpack"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["characterid"])
	assert.Equal(t, "Invalid equipment slot", fields["slot"])
}

func TestFormatValidationError_NonValidationError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}
