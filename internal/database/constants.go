package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Retry Constants
const (
	// DefaultMaxAttempts bounds retries of transactions that fail with a
	// transient store error
	DefaultMaxAttempts = 3

	// DefaultBackoffBaseMS is the base backoff delay in milliseconds;
	// doubled per attempt with jitter
	DefaultBackoffBaseMS = 25
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgRetryingTransientError          = "Retrying after transient store error"
)
