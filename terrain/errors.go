package terrain

import "errors"

var (
	// ErrInvalidSize indicates an unknown size class.
	ErrInvalidSize = errors.New("invalid size class")
	// ErrInvalidRange indicates MinZ greater than MaxZ or a non-finite bound.
	ErrInvalidRange = errors.New("invalid height range")
	// ErrInvalidFilter indicates a filter strength outside [0, 1].
	ErrInvalidFilter = errors.New("invalid filter strength")
	// ErrInvalidIterations indicates a negative iteration count.
	ErrInvalidIterations = errors.New("invalid iteration count")
	// ErrInvalidRoughness indicates a negative or non-finite roughness.
	ErrInvalidRoughness = errors.New("invalid roughness")
	// ErrNilSource indicates a missing random source.
	ErrNilSource = errors.New("nil random source")
)
