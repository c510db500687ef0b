package terrain

import "testing"

func TestRandSourceRanges(t *testing.T) {
	t.Parallel()

	src := NewSource(99)
	for i := 0; i < 10000; i++ {
		if v := src.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 = %g", v)
		}
		if v := src.Signed(); v < -1 || v > 1 {
			t.Fatalf("Signed = %g", v)
		}
	}
}

func TestIntn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		draw float64
		n    int
		want int
	}{
		{draw: 0, n: 4, want: 0},
		{draw: 0.5, n: 4, want: 2},
		{draw: 0.999, n: 3, want: 2},
		{draw: 1, n: 4, want: 3},
		{draw: -0.25, n: 4, want: 0},
	}

	for _, tc := range tests {
		src := &seqSource{vals: []float64{tc.draw}}
		if got := intn(src, tc.n); got != tc.want {
			t.Fatalf("intn(%g, %d) = %d, want %d", tc.draw, tc.n, got, tc.want)
		}
	}
}
