package domain

import "time"

// Slot is a named equipment position that holds at most one item at a time.
type Slot string

// Equipment slots
const (
	SlotHelmet Slot = "helmet"
	SlotArmor  Slot = "armor"
	SlotWeapon Slot = "weapon"
	SlotShader Slot = "shader"
	SlotEmblem Slot = "emblem"
	SlotGhost  Slot = "ghost"
)

// AllSlots lists every valid equipment slot.
var AllSlots = []Slot{SlotHelmet, SlotArmor, SlotWeapon, SlotShader, SlotEmblem, SlotGhost}

// Valid reports whether the slot is one of the known equipment positions.
func (s Slot) Valid() bool {
	for _, known := range AllSlots {
		if s == known {
			return true
		}
	}
	return false
}

// ItemDefinition is the catalog entry an inventory item is minted from.
// Category names the slot the item can be equipped into.
type ItemDefinition struct {
	ID          int       `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    Slot      `json:"category"`
	MinLevel    int       `json:"min_level"`
	Bonuses     StatBlock `json:"bonuses"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryItem is an item owned by a character. Bonuses are a snapshot
// copied from the definition at acquisition time; later definition edits do
// not change items already in inventories.
type InventoryItem struct {
	ID           string    `json:"id"`
	CharacterID  string    `json:"character_id"`
	DefinitionID int       `json:"definition_id"`
	Key          string    `json:"key"`
	Category     Slot      `json:"category"`
	MinLevel     int       `json:"min_level"`
	Bonuses      StatBlock `json:"bonuses"`
	Equipped     bool      `json:"equipped"`
	Slot         *Slot     `json:"slot,omitempty"`
	AcquiredAt   time.Time `json:"acquired_at"`
}

// Inventory is the full set of items owned by a character.
type Inventory struct {
	CharacterID string          `json:"character_id"`
	Items       []InventoryItem `json:"items"`
}

// EquippedBonuses sums the stat bonuses of every equipped item.
func (inv *Inventory) EquippedBonuses() StatBlock {
	var total StatBlock
	for _, item := range inv.Items {
		if item.Equipped {
			total = total.Add(item.Bonuses)
		}
	}
	return total
}

// EquippedInSlot returns the item currently equipped in the slot, or nil.
func (inv *Inventory) EquippedInSlot(slot Slot) *InventoryItem {
	for i := range inv.Items {
		if inv.Items[i].Equipped && inv.Items[i].Slot != nil && *inv.Items[i].Slot == slot {
			return &inv.Items[i]
		}
	}
	return nil
}
