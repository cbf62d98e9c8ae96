// Package dice provides the randomness abstraction shared by the battle
// resolvers and the encounter trigger.
package dice

import "math/rand"

// Source is the randomness provider for every roll in the game.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform int in [0, n). n must be > 0.
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) Intn(n int) int   { return rand.Intn(n) }

// Global is the process-wide unseeded source backed by math/rand.
var Global Source = globalSource{}

// Uniform returns a uniform value in [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Between returns a uniform int in [lo, hi] inclusive.
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
