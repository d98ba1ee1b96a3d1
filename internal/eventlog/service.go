package eventlog

import (
	"context"
	"encoding/json"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/repository"
)

// Service persists published engine events as an audit trail
type Service interface {
	// Subscribe registers the audit logger on every engine event type
	Subscribe(bus event.Bus) error

	// GetEvents retrieves audit rows matching the filter, newest first
	GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error)

	// CleanupOldEvents removes rows older than the retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event audit service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers handleEvent for every engine event type
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ExperienceGranted,
		event.LevelUp,
		event.ItemEquipped,
		event.ItemUnequipped,
		event.StudentSelected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent appends one audit row. The payload is stored verbatim as
// JSON; the character_id is lifted out of it so rows can be queried per
// character. Encoding failures are logged and skipped so a bad payload
// never fails the publishing operation.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	data, err := json.Marshal(evt.Payload)
	if err != nil {
		log.Warn(LogMsgFailedToEncodePayload, "type", evt.Type, "error", err)
		return nil
	}

	var characterID *string
	var fields struct {
		CharacterID string `json:"character_id"`
	}
	if err := json.Unmarshal(data, &fields); err == nil && fields.CharacterID != "" {
		characterID = &fields.CharacterID
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), characterID, data); err != nil {
		log.Error(LogMsgFailedToLogEvent, "type", evt.Type, "error", err)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type)
	return nil
}

// GetEvents retrieves audit rows matching the filter
func (s *service) GetEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	return s.repo.GetEvents(ctx, filter)
}

// CleanupOldEvents removes rows older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
