package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/classforge/engine/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types emitted by the engine. Delivery is at-least-once; consumers
// are responsible for their own idempotency.
const (
	ExperienceGranted Type = "reward.xp_granted"
	LevelUp           Type = "reward.level_up"
	ItemEquipped      Type = "inventory.item_equipped"
	ItemUnequipped    Type = "inventory.item_unequipped"
	StudentSelected   Type = "selection.student_selected"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// XPGrantedPayloadV1 is the typed payload for experience grant events
type XPGrantedPayloadV1 struct {
	CharacterID    string `json:"character_id"`
	ClassID        string `json:"class_id"`
	XPGranted      int64  `json:"xp_granted"`
	CoinsApplied   int64  `json:"coins_applied"`
	NewXP          int64  `json:"new_xp"`
	IdempotencyKey string `json:"idempotency_key"`
	Timestamp      int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level-up events
type LevelUpPayloadV1 struct {
	CharacterID    string           `json:"character_id"`
	ClassID        string           `json:"class_id"`
	PreviousLevel  int              `json:"previous_level"`
	NewLevel       int              `json:"new_level"`
	MaxLightGained int              `json:"max_light_gained"`
	StatsGained    domain.StatBlock `json:"stats_gained"`
	Timestamp      int64            `json:"timestamp"`
}

// ItemEquippedPayloadV1 is the typed payload for equip/unequip events
type ItemEquippedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
	ItemKey     string `json:"item_key"`
	Slot        string `json:"slot"`
	Timestamp   int64  `json:"timestamp"`
}

// StudentSelectedPayloadV1 is the typed payload for selection events
type StudentSelectedPayloadV1 struct {
	ClassID     string `json:"class_id"`
	CharacterID string `json:"character_id"`
	StudentID   string `json:"student_id"`
	Method      string `json:"method"`
	RewardKey   string `json:"reward_key,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// NewXPGrantedEvent builds an ExperienceGranted event
func NewXPGrantedEvent(characterID, classID string, result domain.GrantResult, idempotencyKey string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExperienceGranted,
		Payload: XPGrantedPayloadV1{
			CharacterID:    characterID,
			ClassID:        classID,
			XPGranted:      result.XPGranted,
			CoinsApplied:   result.CoinsApplied,
			NewXP:          result.NewXP,
			IdempotencyKey: idempotencyKey,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewLevelUpEvent builds a LevelUp event
func NewLevelUpEvent(characterID, classID string, result domain.GrantResult) Event {
	payload := LevelUpPayloadV1{
		CharacterID:   characterID,
		ClassID:       classID,
		PreviousLevel: result.PreviousLevel,
		NewLevel:      result.NewLevel,
		Timestamp:     time.Now().Unix(),
	}
	if result.LevelUpReward != nil {
		payload.MaxLightGained = result.LevelUpReward.MaxLightGained
		payload.StatsGained = result.LevelUpReward.StatsGained
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: payload,
	}
}

// NewItemEquippedEvent builds an ItemEquipped event
func NewItemEquippedEvent(characterID, itemID, itemKey string, slot domain.Slot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemEquipped,
		Payload: ItemEquippedPayloadV1{
			CharacterID: characterID,
			ItemID:      itemID,
			ItemKey:     itemKey,
			Slot:        string(slot),
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewItemUnequippedEvent builds an ItemUnequipped event
func NewItemUnequippedEvent(characterID, itemID, itemKey string, slot domain.Slot) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemUnequipped,
		Payload: ItemEquippedPayloadV1{
			CharacterID: characterID,
			ItemID:      itemID,
			ItemKey:     itemKey,
			Slot:        string(slot),
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewStudentSelectedEvent builds a StudentSelected event
func NewStudentSelectedEvent(record domain.SelectionRecord) Event {
	payload := StudentSelectedPayloadV1{
		ClassID:     record.ClassID,
		CharacterID: record.CharacterID,
		StudentID:   record.StudentID,
		Method:      record.Method,
		Timestamp:   time.Now().Unix(),
	}
	if record.RewardKey != nil {
		payload.RewardKey = *record.RewardKey
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    StudentSelected,
		Payload: payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
