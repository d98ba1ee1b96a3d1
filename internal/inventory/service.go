package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/classforge/engine/internal/database"
	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/item"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/metrics"
	"github.com/classforge/engine/internal/repository"
)

// EquipUpdate is one step of a batch equipment change
type EquipUpdate struct {
	ItemID string      `json:"item_id"`
	Slot   domain.Slot `json:"slot,omitempty"`
	Equip  bool        `json:"equip"`
}

// Service defines the interface for inventory and equipment operations
type Service interface {
	AcquireItem(ctx context.Context, characterID, itemKey string) (*domain.InventoryItem, error)
	EquipItem(ctx context.Context, characterID, itemID string, slot domain.Slot) error
	UnequipItem(ctx context.Context, characterID, itemID string) error
	SetEquipmentConfiguration(ctx context.Context, characterID string, updates []EquipUpdate) error
	GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error)
}

type service struct {
	repo       repository.Inventory
	characters repository.Character
	catalog    item.Service
	publisher  event.Bus
	txTimeout  time.Duration
}

// NewService creates a new inventory service. txTimeout bounds each equip
// transaction attempt; zero disables the deadline.
func NewService(repo repository.Inventory, characters repository.Character, catalog item.Service, publisher event.Bus, txTimeout time.Duration) Service {
	return &service{
		repo:       repo,
		characters: characters,
		catalog:    catalog,
		publisher:  publisher,
		txTimeout:  txTimeout,
	}
}

// AcquireItem mints an inventory item from a catalog definition. The stat
// bonuses are copied onto the row so later catalog edits never change items
// already handed out.
func (s *service) AcquireItem(ctx context.Context, characterID, itemKey string) (*domain.InventoryItem, error) {
	log := logger.FromContext(ctx)

	definition, err := s.catalog.GetDefinition(ctx, itemKey)
	if err != nil {
		return nil, err
	}

	character, err := s.characters.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character.Archived() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterArchived, characterID)
	}

	invItem := &domain.InventoryItem{
		ID:           uuid.NewString(),
		CharacterID:  characterID,
		DefinitionID: definition.ID,
		Key:          definition.Key,
		Category:     definition.Category,
		MinLevel:     definition.MinLevel,
		Bonuses:      definition.Bonuses,
	}

	if err := s.repo.InsertItem(ctx, invItem); err != nil {
		return nil, err
	}

	metrics.ItemsAcquired.WithLabelValues(invItem.Key).Inc()
	log.Info(LogMsgItemAcquired,
		"character_id", characterID,
		"item_key", itemKey,
		"item_id", invItem.ID)
	return invItem, nil
}

func (s *service) EquipItem(ctx context.Context, characterID, itemID string, slot domain.Slot) error {
	if !slot.Valid() {
		return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidArgument, slot)
	}
	return s.SetEquipmentConfiguration(ctx, characterID, []EquipUpdate{
		{ItemID: itemID, Slot: slot, Equip: true},
	})
}

func (s *service) UnequipItem(ctx context.Context, characterID, itemID string) error {
	return s.SetEquipmentConfiguration(ctx, characterID, []EquipUpdate{
		{ItemID: itemID, Equip: false},
	})
}

// SetEquipmentConfiguration applies every update in one transaction: the
// first invalid update aborts the whole batch. The character row is locked
// for the duration so concurrent equips on the same character serialize.
func (s *service) SetEquipmentConfiguration(ctx context.Context, characterID string, updates []EquipUpdate) error {
	log := logger.FromContext(ctx)

	if len(updates) == 0 {
		return fmt.Errorf("%w: no updates", domain.ErrInvalidArgument)
	}
	for _, update := range updates {
		if update.Equip && !update.Slot.Valid() {
			log.Warn(LogMsgInvalidEquip, "slot", update.Slot)
			return fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidArgument, update.Slot)
		}
	}

	var events []event.Event
	err := database.WithRetry(ctx, "set_equipment", s.txTimeout, func(ctx context.Context) error {
		var applyErr error
		events, applyErr = s.applyUpdates(ctx, characterID, updates)
		return applyErr
	})
	if err != nil {
		return err
	}

	for _, evt := range events {
		_ = s.publisher.Publish(ctx, evt)
	}

	if len(updates) > 1 {
		log.Info(LogMsgBatchApplied, "character_id", characterID, "updates", len(updates))
	}
	return nil
}

func (s *service) GetInventory(ctx context.Context, characterID string) (*domain.Inventory, error) {
	return s.repo.GetInventory(ctx, characterID)
}

// applyUpdates runs one attempt of the batch transaction.
func (s *service) applyUpdates(ctx context.Context, characterID string, updates []EquipUpdate) ([]event.Event, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin equip transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character.Archived() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterArchived, characterID)
	}

	inventory, err := tx.GetInventory(ctx, characterID)
	if err != nil {
		return nil, err
	}

	var events []event.Event
	statsChanged := false

	for _, update := range updates {
		var changed []event.Event
		var applyErr error
		if update.Equip {
			changed, applyErr = s.equipLocked(ctx, tx, character, inventory, update.ItemID, update.Slot)
		} else {
			changed, applyErr = s.unequipLocked(ctx, tx, character, inventory, update.ItemID)
		}
		if applyErr != nil {
			return nil, applyErr
		}
		if len(changed) > 0 {
			statsChanged = true
			events = append(events, changed...)
		}
	}

	if statsChanged {
		if err := tx.UpdateCharacterStats(ctx, characterID, character.Stats); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit equip transaction: %w", err)
	}
	return events, nil
}

// equipLocked validates and applies one equip against the locked character
// state, mutating the in-memory inventory view so later updates in the same
// batch observe earlier ones.
func (s *service) equipLocked(ctx context.Context, tx repository.InventoryTx, character *domain.Character, inventory *domain.Inventory, itemID string, slot domain.Slot) ([]event.Event, error) {
	log := logger.FromContext(ctx)

	target := findItem(inventory, itemID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if target.Category != slot {
		return nil, fmt.Errorf("%w: item %s belongs in %s", domain.ErrSlotMismatch, target.Key, target.Category)
	}
	if character.Level < target.MinLevel {
		return nil, fmt.Errorf("%w: item %s requires level %d", domain.ErrLevelRequirement, target.Key, target.MinLevel)
	}
	if target.Equipped && target.Slot != nil && *target.Slot == slot {
		log.Debug(LogMsgEquipNoOp, "item_id", itemID, "slot", slot)
		return nil, nil
	}

	var events []event.Event

	// Displace the current occupant before taking the slot, keeping the
	// partial unique index on (character, slot) satisfied mid-transaction.
	if occupant := inventory.EquippedInSlot(slot); occupant != nil && occupant.ID != itemID {
		if err := tx.UpdateItemEquip(ctx, occupant.ID, false, nil); err != nil {
			return nil, err
		}
		character.Stats = character.Stats.Sub(occupant.Bonuses)
		occupant.Equipped = false
		occupant.Slot = nil
		events = append(events, event.NewItemUnequippedEvent(character.ID, occupant.ID, occupant.Key, slot))
	}

	if err := tx.UpdateItemEquip(ctx, target.ID, true, &slot); err != nil {
		return nil, err
	}
	character.Stats = character.Stats.Add(target.Bonuses)
	target.Equipped = true
	slotCopy := slot
	target.Slot = &slotCopy

	log.Info(LogMsgItemEquipped, "character_id", character.ID, "item_id", itemID, "slot", slot)
	return append(events, event.NewItemEquippedEvent(character.ID, target.ID, target.Key, slot)), nil
}

// unequipLocked is idempotent: unequipping an item that is not equipped is a
// successful no-op.
func (s *service) unequipLocked(ctx context.Context, tx repository.InventoryTx, character *domain.Character, inventory *domain.Inventory, itemID string) ([]event.Event, error) {
	log := logger.FromContext(ctx)

	target := findItem(inventory, itemID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
	}
	if !target.Equipped {
		log.Debug(LogMsgEquipNoOp, "item_id", itemID)
		return nil, nil
	}

	slot := target.Category
	if target.Slot != nil {
		slot = *target.Slot
	}

	if err := tx.UpdateItemEquip(ctx, target.ID, false, nil); err != nil {
		return nil, err
	}
	character.Stats = character.Stats.Sub(target.Bonuses)
	target.Equipped = false
	target.Slot = nil

	log.Info(LogMsgItemUnequipped, "character_id", character.ID, "item_id", itemID, "slot", slot)
	return []event.Event{event.NewItemUnequippedEvent(character.ID, target.ID, target.Key, slot)}, nil
}

func findItem(inventory *domain.Inventory, itemID string) *domain.InventoryItem {
	for i := range inventory.Items {
		if inventory.Items[i].ID == itemID {
			return &inventory.Items[i]
		}
	}
	return nil
}
