package eventlog

// DefaultRetentionDays is used when no retention is configured.
const DefaultRetentionDays = 90

// Log messages - event capture
const (
	LogMsgFailedToEncodePayload = "Failed to encode event payload, skipping log"
	LogMsgFailedToLogEvent      = "Failed to log event to database"
	LogMsgEventLogged           = "Event logged to audit trail"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
