package ledger

// Statement query limits
const (
	// DefaultStatementLimit caps entries returned when the filter sets none
	DefaultStatementLimit = 100

	// MaxStatementLimit is the hard ceiling on entries per statement
	MaxStatementLimit = 500
)

// Log message constants
const (
	LogMsgStatementServed       = "Ledger statement served"
	LogMsgConservationVerified  = "Conservation check passed"
	LogMsgConservationViolation = "Conservation check FAILED, cached balance diverges from ledger"
)
