package utils

import "math/rand"

// RandomIndex returns a uniform random index in [0, n). Returns 0 for n <= 1.
func RandomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.Intn(n) //nolint:gosec // Selection fairness, not security critical
}
