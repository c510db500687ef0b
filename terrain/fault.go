package terrain

import (
	"fmt"
	"math"
)

// FaultFormation raises one side of a random cut line per iteration. The
// raise decays linearly from MaxZ on the first iteration toward MinZ, then the
// field is eroded with a four-directional FIR filter of strength Filter.
type FaultFormation struct {
	MinZ float32
	MaxZ float32

	// Iterations is the number of cuts. Zero leaves a flat field.
	Iterations int

	// Filter is the erosion strength in [0, 1]; 0 keeps sharp ridges,
	// values near 1 flatten aggressively.
	Filter float32
}

func (p FaultFormation) validate(size SizeClass, src Source) error {
	switch {
	case !size.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	case !validRange(p.MinZ, p.MaxZ):
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, p.MinZ, p.MaxZ)
	case p.Iterations < 0:
		return fmt.Errorf("%w: %d", ErrInvalidIterations, p.Iterations)
	case math.IsNaN(float64(p.Filter)) || p.Filter < 0 || p.Filter > 1:
		return fmt.Errorf("%w: %g", ErrInvalidFilter, p.Filter)
	case src == nil:
		return ErrNilSource
	}

	return nil
}

// Generate builds a field whose heights all lie in [MinZ, MaxZ].
func (p FaultFormation) Generate(size SizeClass, src Source) (*HeightField, error) {
	if err := p.validate(size, src); err != nil {
		return nil, err
	}

	n := size.Vertices()
	acc := make([]float64, n*n)
	span := float64(p.MaxZ) - float64(p.MinZ)

	for i := 0; i < p.Iterations; i++ {
		raise := float64(p.MaxZ) - span*float64(i)/float64(p.Iterations)
		a, b := randomCut(n, src)
		dx, dz := b.x-a.x, b.z-a.z

		for z := 0; z < n; z++ {
			for x := 0; x < n; x++ {
				cross := dx*(float64(z)-a.z) - dz*(float64(x)-a.x)
				if cross > 0 {
					acc[z*n+x] += raise
				}
			}
		}
	}

	f := fromFloat64(n, acc)
	erode(f, p.Filter)
	f.remap(p.MinZ, p.MaxZ)

	return f, nil
}

type point struct {
	x, z float64
}

// randomCut picks two distinct edges of an n x n grid (0 top, 1 right,
// 2 bottom, 3 left) and a uniform point along each.
func randomCut(n int, src Source) (point, point) {
	first := intn(src, 4)
	second := (first + 1 + intn(src, 3)) % 4

	return edgePoint(first, n, src), edgePoint(second, n, src)
}

func edgePoint(edge, n int, src Source) point {
	last := float64(n - 1)
	t := src.Float64() * last

	switch edge {
	case 0:
		return point{x: t, z: 0}
	case 1:
		return point{x: last, z: t}
	case 2:
		return point{x: t, z: last}
	default:
		return point{x: 0, z: t}
	}
}
