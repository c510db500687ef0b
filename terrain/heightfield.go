package terrain

import (
	"image"
	"math"
)

// HeightField is a Size x Size grid of elevations stored row-major, so the
// sample at column x and row z is Heights[z*Size+x]. The caller owns it.
type HeightField struct {
	Size    int
	Heights []float32
}

func newHeightField(size int) *HeightField {
	return &HeightField{
		Size:    size,
		Heights: make([]float32, size*size),
	}
}

// At returns the height at column x, row z.
func (f *HeightField) At(x, z int) float32 {
	return f.Heights[z*f.Size+x]
}

// Set stores the height at column x, row z.
func (f *HeightField) Set(x, z int, v float32) {
	f.Heights[z*f.Size+x] = v
}

// MinMax returns the lowest and highest stored heights.
func (f *HeightField) MinMax() (lo, hi float32) {
	if len(f.Heights) == 0 {
		return 0, 0
	}

	lo, hi = f.Heights[0], f.Heights[0]
	for _, v := range f.Heights[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	return lo, hi
}

// maxSafeHeight bounds stored magnitudes so that blur sums and filter steps
// stay finite in float32.
const maxSafeHeight = math.MaxFloat32 / 16

// fromFloat64 stores an n x n grid accumulated in float64. A grid whose
// magnitude exceeds maxSafeHeight is scaled into [-1, 1]; the final remap
// is unaffected by a uniform positive scale.
func fromFloat64(n int, vals []float64) *HeightField {
	f := newHeightField(n)

	var peak float64
	for _, v := range vals {
		peak = math.Max(peak, math.Abs(v))
	}

	scale := 1.0
	if peak > maxSafeHeight {
		scale = 1 / peak
	}
	for i, v := range vals {
		f.Heights[i] = float32(v * scale)
	}

	return f
}

// remap stretches the realized range linearly onto [minZ, maxZ] and clamps
// rounding residue. A flat field is only clamped into the range. The
// arithmetic runs in float64 so ranges spanning most of float32 stay finite.
func (f *HeightField) remap(minZ, maxZ float32) {
	lo, hi := f.MinMax()
	if hi == lo {
		for i, v := range f.Heights {
			f.Heights[i] = clamp(v, minZ, maxZ)
		}
		return
	}

	base := float64(minZ)
	scale := (float64(maxZ) - base) / (float64(hi) - float64(lo))
	for i, v := range f.Heights {
		f.Heights[i] = clamp(float32(base+(float64(v)-float64(lo))*scale), minZ, maxZ)
	}
}

// Gray16 renders the field as a 16-bit grayscale image, mapping minZ to black
// and maxZ to white. Row 0 of the image is row 0 of the field.
func (f *HeightField) Gray16(minZ, maxZ float32) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Size, f.Size))
	span := float64(maxZ) - float64(minZ)

	for z := 0; z < f.Size; z++ {
		for x := 0; x < f.Size; x++ {
			var t float64
			if span > 0 {
				t = (float64(f.At(x, z)) - float64(minZ)) / span
			}
			t = math.Max(0, math.Min(1, t))
			v := uint16(math.Round(t * math.MaxUint16))

			i := img.PixOffset(x, z)
			img.Pix[i] = uint8(v >> 8)
			img.Pix[i+1] = uint8(v)
		}
	}

	return img
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

func validRange(minZ, maxZ float32) bool {
	if math.IsNaN(float64(minZ)) || math.IsNaN(float64(maxZ)) {
		return false
	}
	if math.IsInf(float64(minZ), 0) || math.IsInf(float64(maxZ), 0) {
		return false
	}

	return minZ <= maxZ
}
