package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomIndex_Bounds(t *testing.T) {
	assert.Equal(t, 0, RandomIndex(0))
	assert.Equal(t, 0, RandomIndex(1))

	for i := 0; i < 100; i++ {
		idx := RandomIndex(5)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
	}
}
