/*
Package terrain generates square height fields for terrain meshes.

Two stochastic generators are provided: FaultFormation, which repeatedly cuts
the grid along random lines and raises one side before smoothing the result
with a directional FIR filter, and MidpointDisplacement, the diamond-square
algorithm followed by box-blur passes. Both finish by remapping the realized
heights onto the requested [MinZ, MaxZ] range.

Randomness comes from an explicit Source so results are reproducible:

	src := terrain.NewSource(42)
	hf, err := terrain.MidpointDisplacement{MinZ: 0, MaxZ: 255, Roughness: 1}.
		Generate(terrain.Size257, src)
*/
package terrain
