// Package leveling maps accumulated experience to levels. Every function is
// pure and deterministic so callers can recompute results freely inside and
// outside transactions.
package leveling

import "math"

// Progress describes where an experience total sits within the level curve.
type Progress struct {
	Level       int   // current level, always >= 1
	XPIntoLevel int64 // experience accumulated past the current level's threshold
	XPToNext    int64 // experience still needed to reach the next level
}

// StepCost returns the experience required to go from level to level+1.
// The cost grows geometrically: BaseXP * GrowthFactor^(level-1).
func StepCost(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(float64(BaseXP) * math.Pow(GrowthFactor, float64(level-1)))
}

// ThresholdFor returns the cumulative experience at which the given level
// begins. Level 1 begins at zero.
func ThresholdFor(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	var cumulative int64
	for l := 1; l < level; l++ {
		cumulative += StepCost(l)
	}
	return cumulative
}

// LevelFor computes the level and progress for a non-negative experience
// total. The returned level L satisfies ThresholdFor(L) <= xp and
// ThresholdFor(L+1) > xp, capped at MaxLevel. Negative inputs are treated
// as zero.
func LevelFor(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}

	level := 1
	var threshold int64

	for level < MaxLevel {
		step := StepCost(level)
		if threshold+step > xp {
			break
		}
		threshold += step
		level++
	}

	return Progress{
		Level:       level,
		XPIntoLevel: xp - threshold,
		XPToNext:    threshold + StepCost(level) - xp,
	}
}
