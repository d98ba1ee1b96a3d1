package leveling

// XP formula constants
const (
	// BaseXP is the cost of the first level step (level 1 -> 2)
	BaseXP = 100

	// GrowthFactor is the geometric multiplier applied per level step
	GrowthFactor = 1.4

	// MaxLevel is the highest reachable level; XP accrues past it but the
	// reported level stops climbing
	MaxLevel = 50
)
