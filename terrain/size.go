package terrain

import (
	"fmt"
	"strconv"
)

// SizeClass selects the number of vertices along one edge of a height field.
type SizeClass uint8

const (
	Size33 SizeClass = iota
	Size65
	Size129
	Size257
	Size513
	Size1025

	sizeCount
)

// Vertices returns the edge length, 2^(5+s)+1, or 0 for an unknown class.
func (s SizeClass) Vertices() int {
	if s >= sizeCount {
		return 0
	}

	return 32<<s + 1
}

// Valid reports whether s is a known size class.
func (s SizeClass) Valid() bool {
	return s < sizeCount
}

func (s SizeClass) String() string {
	if !s.Valid() {
		return "SizeClass(" + strconv.Itoa(int(s)) + ")"
	}

	return strconv.Itoa(s.Vertices())
}

// ParseSizeClass returns the class with the given edge length.
func ParseSizeClass(vertices int) (SizeClass, error) {
	for s := Size33; s < sizeCount; s++ {
		if s.Vertices() == vertices {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %d vertices per edge", ErrInvalidSize, vertices)
}
