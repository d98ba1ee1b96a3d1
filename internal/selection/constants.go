package selection

// Exclusion window bounds
const (
	// MaxExcludeRecent caps how many recent selection records can be excluded
	MaxExcludeRecent = 50
)

// Log message constants
const (
	LogMsgStudentSelected = "Student selected"
	LogMsgEmptyPool       = "No eligible characters for selection"
	LogMsgRewardAttached  = "Selection reward granted"
	LogMsgRecordFailed    = "Failed to persist selection record"
)
