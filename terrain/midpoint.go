package terrain

import (
	"fmt"
	"math"
)

// DefaultSmoothing is the number of box-blur passes applied after
// displacement when MidpointDisplacement.Smoothing is zero.
const DefaultSmoothing = 3

// MidpointDisplacement is the diamond-square algorithm. Displacement starts at
// half the height range and is scaled by 2^-Roughness after every step, so
// higher roughness gives smoother terrain.
type MidpointDisplacement struct {
	MinZ float32
	MaxZ float32

	// Roughness is usually in [0.25, 1.5].
	Roughness float32

	// Smoothing is the number of 3x3 box-blur passes; zero uses
	// DefaultSmoothing and a negative value disables blurring.
	Smoothing int
}

func (p MidpointDisplacement) validate(size SizeClass, src Source) error {
	switch {
	case !size.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	case !validRange(p.MinZ, p.MaxZ):
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, p.MinZ, p.MaxZ)
	case math.IsNaN(float64(p.Roughness)) || math.IsInf(float64(p.Roughness), 0) || p.Roughness < 0:
		return fmt.Errorf("%w: %g", ErrInvalidRoughness, p.Roughness)
	case src == nil:
		return ErrNilSource
	}

	return nil
}

func (p MidpointDisplacement) smoothing() int {
	switch {
	case p.Smoothing == 0:
		return DefaultSmoothing
	case p.Smoothing < 0:
		return 0
	default:
		return p.Smoothing
	}
}

// Generate builds a field whose realized minimum is MinZ and maximum is MaxZ.
func (p MidpointDisplacement) Generate(size SizeClass, src Source) (*HeightField, error) {
	if err := p.validate(size, src); err != nil {
		return nil, err
	}

	f := p.displace(size.Vertices(), src)
	boxBlur(f, p.smoothing())
	f.remap(p.MinZ, p.MaxZ)

	return f, nil
}

// grid is the float64 working surface of the displacement passes.
type grid struct {
	n int
	v []float64
}

func (g *grid) at(x, z int) float64 {
	return g.v[z*g.n+x]
}

func (g *grid) set(x, z int, v float64) {
	g.v[z*g.n+x] = v
}

// displace runs the diamond and square passes on an n x n grid, n = 2^k+1.
func (p MidpointDisplacement) displace(n int, src Source) *HeightField {
	g := &grid{n: n, v: make([]float64, n*n)}
	delta := (float64(p.MaxZ) - float64(p.MinZ)) / 2
	reduce := math.Pow(2, -float64(p.Roughness))

	last := n - 1
	g.set(0, 0, src.Signed()*delta)
	g.set(last, 0, src.Signed()*delta)
	g.set(0, last, src.Signed()*delta)
	g.set(last, last, src.Signed()*delta)

	for step := last; step > 1; step /= 2 {
		diamondStep(g, step, delta, src)
		squareStep(g, step, delta, src)
		delta *= reduce
	}

	return fromFloat64(n, g.v)
}

// diamondStep sets the center of every step x step cell to the mean of its
// corners plus a random offset in [-delta, delta].
func diamondStep(g *grid, step int, delta float64, src Source) {
	half := step / 2
	for z := 0; z < g.n-1; z += step {
		for x := 0; x < g.n-1; x += step {
			sum := g.at(x, z) + g.at(x+step, z) + g.at(x, z+step) + g.at(x+step, z+step)
			g.set(x+half, z+half, sum/4+src.Signed()*delta)
		}
	}
}

// squareStep sets the edge midpoints of every cell from the two edge corners
// and the cell centers on either side; a center outside the grid is replaced
// by the cell's own center.
func squareStep(g *grid, step int, delta float64, src Source) {
	half := step / 2
	last := g.n - 1

	for z := 0; z < last; z += step {
		for x := 0; x < last; x += step {
			center := g.at(x+half, z+half)

			above := center
			if z-half >= 0 {
				above = g.at(x+half, z-half)
			}
			top := (g.at(x, z) + g.at(x+step, z) + center + above) / 4
			g.set(x+half, z, top+src.Signed()*delta)

			left := center
			if x-half >= 0 {
				left = g.at(x-half, z+half)
			}
			mid := (g.at(x, z) + g.at(x, z+step) + center + left) / 4
			g.set(x, z+half, mid+src.Signed()*delta)

			if x+step == last {
				right := (g.at(x+step, z) + g.at(x+step, z+step) + center + center) / 4
				g.set(x+step, z+half, right+src.Signed()*delta)
			}
			if z+step == last {
				bottom := (g.at(x, z+step) + g.at(x+step, z+step) + center + center) / 4
				g.set(x+half, z+step, bottom+src.Signed()*delta)
			}
		}
	}
}
