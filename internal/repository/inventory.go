package repository

import (
	"context"

	"github.com/classforge/engine/internal/domain"
)

// Inventory defines the interface for inventory persistence
type Inventory interface {
	GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error)
	GetItem(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	InsertItem(ctx context.Context, item *domain.InventoryItem) error
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for equip transactions. The character
// row is locked first so concurrent equips on the same character serialize.
type InventoryTx interface {
	Tx
	GetCharacterForUpdate(ctx context.Context, characterID string) (*domain.Character, error)
	GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error)
	UpdateItemEquip(ctx context.Context, itemID string, equipped bool, slot *domain.Slot) error
	UpdateCharacterStats(ctx context.Context, characterID string, stats domain.StatBlock) error
}
