package terrain

import (
	"math"
	"testing"
)

// seqSource replays a fixed sequence of draws for both methods.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) next() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func (s *seqSource) Float64() float64 { return s.next() }
func (s *seqSource) Signed() float64  { return s.next() }

// assertInRange fails when any height is NaN or lies outside [lo, hi].
func assertInRange(t *testing.T, f *HeightField, lo, hi float32) {
	t.Helper()

	for i, v := range f.Heights {
		if math.IsNaN(float64(v)) || v < lo || v > hi {
			t.Fatalf("height %d = %g outside [%g, %g]", i, v, lo, hi)
		}
	}
}
