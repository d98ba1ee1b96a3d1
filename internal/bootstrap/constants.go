package bootstrap

import "time"

// File system permissions
const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// Event system defaults
const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// Log messages for catalog seeding
const (
	LogMsgSyncingCatalog   = "Syncing item catalog from JSON config..."
	LogMsgCatalogSynced    = "Item catalog synced"
	ErrMsgFailedLoadSeed   = "failed to load item catalog seed"
	ErrMsgFailedInsertSeed = "failed to insert seeded item definition"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgAuditWorkerFailed          = "Conservation audit worker shutdown failed"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
