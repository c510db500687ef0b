package terrain

// filterLine runs a one-pole FIR filter over count samples starting at start
// and spaced stride apart: each sample becomes filter*previous + (1-filter)*current,
// with previous being the already filtered neighbour.
func filterLine(data []float32, start, count, stride int, filter float32) {
	prev := data[start]
	for i := 1; i < count; i++ {
		p := start + i*stride
		cur := filter*prev + (1-filter)*data[p]
		data[p] = cur
		prev = cur
	}
}

// erode smooths the field with four directional passes: left to right, right
// to left, top to bottom and bottom to top.
func erode(f *HeightField, filter float32) {
	n := f.Size
	h := f.Heights

	for z := 0; z < n; z++ {
		filterLine(h, z*n, n, 1, filter)
	}
	for z := 0; z < n; z++ {
		filterLine(h, z*n+n-1, n, -1, filter)
	}
	for x := 0; x < n; x++ {
		filterLine(h, x, n, n, filter)
	}
	for x := 0; x < n; x++ {
		filterLine(h, (n-1)*n+x, n, -n, filter)
	}
}

// boxBlur averages every sample with its 3x3 neighbourhood, passes times.
// Neighbours outside the grid reuse the nearest edge sample.
func boxBlur(f *HeightField, passes int) {
	n := f.Size
	if passes <= 0 || n == 0 {
		return
	}

	src := f.Heights
	dst := make([]float32, len(src))

	for pass := 0; pass < passes; pass++ {
		for z := 0; z < n; z++ {
			for x := 0; x < n; x++ {
				var sum float32
				for dz := -1; dz <= 1; dz++ {
					row := min(max(z+dz, 0), n-1) * n
					for dx := -1; dx <= 1; dx++ {
						sum += src[row+min(max(x+dx, 0), n-1)]
					}
				}
				dst[z*n+x] = sum / 9
			}
		}
		src, dst = dst, src
	}

	if &src[0] != &f.Heights[0] {
		copy(f.Heights, src)
	}
}
