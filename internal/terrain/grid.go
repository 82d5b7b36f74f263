package terrain

// GridSpec defines the sampling domain for one regeneration. Sizes
// count sample points per axis; marching-cubes cells span adjacent
// points, so a grid of N points yields N-1 cells along that axis.
type GridSpec struct {
	SizeX, SizeY, SizeZ int
	Isolevel            float64
	Amplitude           float64
	VerticalOffset      float64
	OffsetX, OffsetZ    float64
	Use3D               bool
}

// Degenerate reports whether any axis has no sample points. A
// degenerate grid yields empty output rather than an error.
func (g GridSpec) Degenerate() bool {
	return g.SizeX < 1 || g.SizeY < 1 || g.SizeZ < 1
}

// CellBudget is the worst-case number of grid cells, used to pre-size
// output storage.
func (g GridSpec) CellBudget() int {
	if g.Degenerate() {
		return 0
	}
	return g.SizeX * g.SizeY * g.SizeZ
}

// CenteredX maps a grid index to its coordinate re-centered around
// the origin: index - size/2 + 0.5.
func (g GridSpec) CenteredX(ix int) float64 { return centered(ix, g.SizeX) }
func (g GridSpec) CenteredY(iy int) float64 { return centered(iy, g.SizeY) }
func (g GridSpec) CenteredZ(iz int) float64 { return centered(iz, g.SizeZ) }

func centered(index, size int) float64 {
	return float64(index) - float64(size)/2 + 0.5
}
