package metrics

import (
	"context"

	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector cares about
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.ExperienceGranted,
		event.LevelUp,
		event.ItemEquipped,
		event.ItemUnequipped,
		event.StudentSelected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ExperienceGranted:
		payload, err := event.DecodePayload[event.XPGrantedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		XPGranted.Add(float64(payload.XPGranted))
		if payload.CoinsApplied > 0 {
			CoinsCredited.Add(float64(payload.CoinsApplied))
		} else if payload.CoinsApplied < 0 {
			CoinsDebited.Add(float64(-payload.CoinsApplied))
		}

	case event.LevelUp:
		LevelUps.Inc()

	case event.ItemEquipped:
		payload, err := event.DecodePayload[event.ItemEquippedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		ItemsEquipped.WithLabelValues(payload.Slot).Inc()

	case event.StudentSelected:
		SelectionsPerformed.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
