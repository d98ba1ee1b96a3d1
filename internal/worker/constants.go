package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Conservation Audit Worker
// ============================================================================

// Log messages for conservation audit operations
const (
	LogMsgAuditSweepStarting  = "Conservation audit sweep starting"
	LogMsgAuditSweepCompleted = "Conservation audit sweep completed"
	LogMsgAuditSweepFailed    = "Conservation audit sweep failed"
	LogMsgAuditMismatchFound  = "Conservation audit found balance mismatch"
)

// ============================================================================
// Conservation Audit Configuration
// ============================================================================

const (
	// DefaultAuditInterval is how often the audit sweeps all accounts
	DefaultAuditInterval = 15 * time.Minute

	// DefaultAuditBatchSize is how many accounts are checked per page
	DefaultAuditBatchSize = 100
)
