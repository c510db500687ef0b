package terrain

import (
	"math"
	"slices"
	"testing"
)

func TestFilterLine(t *testing.T) {
	t.Parallel()

	data := []float32{0, 10, 10, 10}
	filterLine(data, 0, 4, 1, 0.5)

	want := []float32{0, 5, 7.5, 8.75}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data = %v, want %v", data, want)
		}
	}

	// reversed stride walks from the end
	data = []float32{10, 10, 0}
	filterLine(data, 2, 3, -1, 0.5)
	if data[1] != 5 || data[0] != 7.5 {
		t.Fatalf("reverse data = %v", data)
	}
}

func TestErodeConstantFieldIsFixedPoint(t *testing.T) {
	t.Parallel()

	for _, filter := range []float32{0, 0.25, 0.5, 0.75, 1} {
		f := newHeightField(9)
		for i := range f.Heights {
			f.Heights[i] = 4.25
		}
		erode(f, filter)
		for i, v := range f.Heights {
			if v != 4.25 {
				t.Fatalf("filter %g: height %d = %g", filter, i, v)
			}
		}
	}
}

func TestErodeZeroFilterIsIdentity(t *testing.T) {
	t.Parallel()

	f := newHeightField(5)
	for i := range f.Heights {
		f.Heights[i] = float32(i * i % 7)
	}
	want := append([]float32(nil), f.Heights...)

	erode(f, 0)
	for i := range want {
		if f.Heights[i] != want[i] {
			t.Fatalf("height %d = %g, want %g", i, f.Heights[i], want[i])
		}
	}
}

func TestBoxBlur(t *testing.T) {
	t.Parallel()

	t.Run("center-spike", func(t *testing.T) {
		t.Parallel()

		f := newHeightField(3)
		f.Set(1, 1, 9)
		boxBlur(f, 1)
		for i, v := range f.Heights {
			if v != 1 {
				t.Fatalf("height %d = %g, want 1", i, v)
			}
		}
	})

	t.Run("corner-clamps-to-edge", func(t *testing.T) {
		t.Parallel()

		f := newHeightField(3)
		f.Set(0, 0, 9)
		boxBlur(f, 1)
		if got := f.At(0, 0); got != 4 {
			t.Fatalf("corner = %g, want 4", got)
		}
		if got := f.At(2, 2); got != 0 {
			t.Fatalf("far corner = %g, want 0", got)
		}
	})

	t.Run("even-passes-write-back", func(t *testing.T) {
		t.Parallel()

		f := newHeightField(3)
		f.Set(1, 1, 81)
		boxBlur(f, 2)
		var sum float64
		for _, v := range f.Heights {
			sum += float64(v)
		}
		if f.At(1, 1) >= 81 || sum == 0 {
			t.Fatalf("blur did not reach the field: %v", f.Heights)
		}
	})
}

func TestRemap(t *testing.T) {
	t.Parallel()

	f := &HeightField{Size: 2, Heights: []float32{-3, 1, 5, 0}}
	f.remap(10, 20)
	want := []float32{10, 15, 20, 13.75}
	for i := range want {
		if math.Abs(float64(f.Heights[i]-want[i])) > 1e-5 {
			t.Fatalf("heights = %v, want %v", f.Heights, want)
		}
	}

	flat := &HeightField{Size: 2, Heights: []float32{0, 0, 0, 0}}
	flat.remap(-1, 1)
	for _, v := range flat.Heights {
		if v != 0 {
			t.Fatalf("flat field changed: %v", flat.Heights)
		}
	}

	flat.remap(2, 3)
	for _, v := range flat.Heights {
		if v != 2 {
			t.Fatalf("flat field not clamped: %v", flat.Heights)
		}
	}
}

func TestGray16(t *testing.T) {
	t.Parallel()

	f := &HeightField{Size: 2, Heights: []float32{0, 10, 5, 20}}
	img := f.Gray16(0, 10)

	tests := []struct {
		x, y int
		want uint16
	}{
		{0, 0, 0},
		{1, 0, 65535},
		{0, 1, 32768},
		{1, 1, 65535},
	}
	for _, tc := range tests {
		if got := img.Gray16At(tc.x, tc.y).Y; got != tc.want {
			t.Fatalf("pixel (%d,%d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFromFloat64ScalesOversizedGrids(t *testing.T) {
	t.Parallel()

	small := fromFloat64(2, []float64{1, -2, 3.5, 0})
	if !slices.Equal(small.Heights, []float32{1, -2, 3.5, 0}) {
		t.Fatalf("small grid changed: %v", small.Heights)
	}

	big := fromFloat64(2, []float64{1e39, -5e38, 0, 2.5e38})
	want := []float32{1, -0.5, 0, 0.25}
	if !slices.Equal(big.Heights, want) {
		t.Fatalf("oversized grid = %v, want %v", big.Heights, want)
	}
}

func TestGray16WideRange(t *testing.T) {
	t.Parallel()

	f := &HeightField{Size: 2, Heights: []float32{-3e38, 3e38, 0, 0}}
	img := f.Gray16(-3e38, 3e38)
	if got := img.Gray16At(0, 0).Y; got != 0 {
		t.Fatalf("min = %d", got)
	}
	if got := img.Gray16At(1, 0).Y; got != 0xffff {
		t.Fatalf("max = %d", got)
	}
	if got := img.Gray16At(0, 1).Y; got != 32768 {
		t.Fatalf("mid = %d", got)
	}
}
