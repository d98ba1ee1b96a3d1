package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor_ZeroXP(t *testing.T) {
	p := LevelFor(0)

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(0), p.XPIntoLevel)
	assert.Equal(t, int64(BaseXP), p.XPToNext)
}

func TestLevelFor_NegativeXPTreatedAsZero(t *testing.T) {
	p := LevelFor(-50)

	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(0), p.XPIntoLevel)
}

func TestLevelFor_ExactThresholds(t *testing.T) {
	// At every level boundary the reported level must flip exactly at the
	// threshold: one below stays on the old level, the threshold itself and
	// one above are on the new level.
	for level := 2; level <= 10; level++ {
		threshold := ThresholdFor(level)

		below := LevelFor(threshold - 1)
		at := LevelFor(threshold)
		above := LevelFor(threshold + 1)

		assert.Equal(t, level-1, below.Level, "xp=%d (one below level %d threshold)", threshold-1, level)
		assert.Equal(t, level, at.Level, "xp=%d (level %d threshold)", threshold, level)
		assert.Equal(t, level, above.Level, "xp=%d (one above level %d threshold)", threshold+1, level)

		assert.Equal(t, int64(0), at.XPIntoLevel)
	}
}

func TestLevelFor_MonotonicallyNonDecreasing(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 20000; xp += 7 {
		p := LevelFor(xp)
		require.GreaterOrEqual(t, p.Level, prev, "level decreased at xp=%d", xp)
		prev = p.Level
	}
}

func TestLevelFor_ProgressAccounting(t *testing.T) {
	// XPIntoLevel + XPToNext must always equal the current step cost.
	for xp := int64(0); xp <= 5000; xp += 13 {
		p := LevelFor(xp)
		assert.Equal(t, StepCost(p.Level), p.XPIntoLevel+p.XPToNext, "xp=%d", xp)
	}
}

func TestLevelFor_CappedAtMaxLevel(t *testing.T) {
	huge := ThresholdFor(MaxLevel) * 10

	p := LevelFor(huge)

	assert.Equal(t, MaxLevel, p.Level)
	assert.Positive(t, p.XPIntoLevel)
}

func TestStepCost_Grows(t *testing.T) {
	for level := 1; level < MaxLevel; level++ {
		assert.Greater(t, StepCost(level+1), StepCost(level), "step cost must grow at level %d", level)
	}
}

func TestThresholdFor_FirstLevels(t *testing.T) {
	assert.Equal(t, int64(0), ThresholdFor(1))
	assert.Equal(t, int64(100), ThresholdFor(2))
	// 100 + floor(100*1.4) = 240
	assert.Equal(t, int64(240), ThresholdFor(3))
}

func TestLevelFor_SpecScenario(t *testing.T) {
	// A character at 0 XP receiving 150 XP crosses the level-2 threshold
	// (100) and lands inside level 2.
	p := LevelFor(150)

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, int64(50), p.XPIntoLevel)
}
