package terrain

// Generator produces a height field of the given size from src.
type Generator interface {
	Generate(size SizeClass, src Source) (*HeightField, error)
}

var (
	_ Generator = FaultFormation{}
	_ Generator = MidpointDisplacement{}
)
