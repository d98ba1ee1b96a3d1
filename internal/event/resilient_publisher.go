package event

import (
	"context"
	"time"

	"github.com/classforge/engine/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter queuing
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
}

// NewResilientPublisher creates a new ResilientPublisher. The dead-letter file
// is opened eagerly so startup fails fast on a bad path.
func NewResilientPublisher(inner Bus, config ResilientConfig) (*ResilientPublisher, error) {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = RetryInitialDelaySeconds * time.Second
	}

	dlw, err := NewDeadLetterWriter(config.DeadLetterPath)
	if err != nil {
		return nil, err
	}

	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: dlw,
	}, nil
}

// Publish attempts to publish an event. If it fails, it initiates a background
// retry loop and returns nil to the caller, decoupling the caller from the
// retry mechanism. Grant and equip outcomes are already committed by the time
// an event is published, so a failed publish must never fail the operation.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	// Detached goroutine because the request context may be cancelled
	go p.retryLoop(event, err)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	ctx := context.Background()

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(CalculateRetryDelay(p.config.RetryDelay, i))

		err := p.inner.Publish(ctx, event)
		if err == nil {
			logger.Info(LogMsgEventRetrySucceeded,
				"event_type", event.Type,
				"attempt", i)
			return
		}
		lastErr = err

		logger.Warn(LogMsgEventRetryFailed,
			"event_type", event.Type,
			"attempt", i,
			"error", err)
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", event.Type)
	if err := p.deadLetter.Write(event, p.config.MaxRetries+1, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Close releases the dead-letter file handle
func (p *ResilientPublisher) Close() error {
	return p.deadLetter.Close()
}
