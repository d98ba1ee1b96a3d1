package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/classforge/engine/internal/config"
	"github.com/classforge/engine/internal/event"
	"github.com/classforge/engine/internal/metrics"
)

// InitializeEventSystem creates the in-process event bus, wraps it in the
// resilient publisher, and subscribes the metrics collector. Committed
// outcomes publish through the returned publisher; handlers subscribe on
// the bus.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if dir := filepath.Dir(deadLetterPath); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
		}
	}

	resilientPublisher, err := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, resilientPublisher, nil
}
