package terrain

import (
	"math/rand"
	"time"
)

// Source supplies the uniform draws consumed by the generators. Draws are
// taken in a fixed order, so a seeded source reproduces the same field.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Signed returns a value in [-1, 1].
	Signed() float64
}

// RandSource adapts *rand.Rand to Source. It is not safe for concurrent use.
type RandSource struct {
	Rng *rand.Rand
}

// NewSource returns a source with a fixed seed.
func NewSource(seed int64) *RandSource {
	return &RandSource{Rng: rand.New(rand.NewSource(seed))} //nolint:gosec // terrain noise, not crypto
}

// NewTimeSource returns a source seeded from the wall clock.
func NewTimeSource() *RandSource {
	return NewSource(time.Now().UnixNano())
}

// Float64 returns a value in [0, 1).
func (s *RandSource) Float64() float64 {
	return s.Rng.Float64()
}

// Signed returns a value in [-1, 1].
func (s *RandSource) Signed() float64 {
	return s.Rng.Float64()*2 - 1
}

// intn maps a uniform draw onto [0, n).
func intn(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}

	return i
}
