package noise

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Domain warp: sample coordinates are displaced by auxiliary noise
// before the base field is evaluated. Each axis uses its own seeded
// generator and a distinct fixed coordinate offset so the
// displacements stay decorrelated.

// Fixed per-axis sampling offsets. Arbitrary non-integer constants;
// changing them changes every warped field.
var (
	warpOffX = [3]float64{0.0, 5.2, -9.7}
	warpOffY = [3]float64{0.0, 1.3, 4.1}
	warpOffZ = [3]float64{0.0, -3.7, 8.3}
)

type warper struct {
	cfg      WarpConfig
	axes     [3]opensimplex.Noise
	bounding float64
}

func newWarper(cfg WarpConfig) *warper {
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	w := &warper{cfg: cfg}
	w.bounding = fractalBounding(cfg.Gain, w.octaves())
	if cfg.Type != WarpBasicGrid {
		for axis := range w.axes {
			w.axes[axis] = opensimplex.New(cfg.Seed + int64(axis*7))
		}
	}
	return w
}

// octaves reports how many displacement octaves apply. The Reduced
// warp type is the cheap single-pass variant regardless of config.
func (w *warper) octaves() int {
	if w.cfg.Fractal == WarpFractalNone || w.cfg.Type == WarpOpenSimplex2Reduced {
		return 1
	}
	return w.cfg.Octaves
}

// axisNoise2 evaluates the warp source for one axis at warp-space
// coordinates. The Reduced variant skips the fixed offsets.
func (w *warper) axisNoise2(axis int, x, y float64) float64 {
	switch w.cfg.Type {
	case WarpBasicGrid:
		return valueNoise2(x+warpOffX[axis], y+warpOffY[axis], w.cfg.Seed+int64(axis*7))
	case WarpOpenSimplex2Reduced:
		return w.axes[axis].Eval2(x, y)
	default:
		return w.axes[axis].Eval2(x+warpOffX[axis], y+warpOffY[axis])
	}
}

func (w *warper) axisNoise3(axis int, x, y, z float64) float64 {
	switch w.cfg.Type {
	case WarpBasicGrid:
		return valueNoise3(x+warpOffX[axis], y+warpOffY[axis], z+warpOffZ[axis], w.cfg.Seed+int64(axis*7))
	case WarpOpenSimplex2Reduced:
		return w.axes[axis].Eval3(x, y, z)
	default:
		return w.axes[axis].Eval3(x+warpOffX[axis], y+warpOffY[axis], z+warpOffZ[axis])
	}
}

func (w *warper) warp2(x, y float64) (float64, float64) {
	freq := w.cfg.Frequency
	amp := w.cfg.Amplitude * w.bounding
	n := w.octaves()

	switch w.cfg.Fractal {
	case WarpFractalIndependent:
		// Displacements all derive from the original coordinates.
		dx, dy := 0.0, 0.0
		for i := 0; i < n; i++ {
			dx += w.axisNoise2(0, x*freq, y*freq) * amp
			dy += w.axisNoise2(1, x*freq, y*freq) * amp
			freq *= w.cfg.Lacunarity
			amp *= w.cfg.Gain
		}
		return x + dx, y + dy
	default:
		// Progressive (and the single-pass None case): each octave
		// warps the coordinates the previous octave produced. Both
		// axis displacements read the same pre-octave position.
		for i := 0; i < n; i++ {
			dx := w.axisNoise2(0, x*freq, y*freq) * amp
			dy := w.axisNoise2(1, x*freq, y*freq) * amp
			x += dx
			y += dy
			freq *= w.cfg.Lacunarity
			amp *= w.cfg.Gain
		}
		return x, y
	}
}

func (w *warper) warp3(x, y, z float64) (float64, float64, float64) {
	freq := w.cfg.Frequency
	amp := w.cfg.Amplitude * w.bounding
	n := w.octaves()

	switch w.cfg.Fractal {
	case WarpFractalIndependent:
		dx, dy, dz := 0.0, 0.0, 0.0
		for i := 0; i < n; i++ {
			dx += w.axisNoise3(0, x*freq, y*freq, z*freq) * amp
			dy += w.axisNoise3(1, x*freq, y*freq, z*freq) * amp
			dz += w.axisNoise3(2, x*freq, y*freq, z*freq) * amp
			freq *= w.cfg.Lacunarity
			amp *= w.cfg.Gain
		}
		return x + dx, y + dy, z + dz
	default:
		for i := 0; i < n; i++ {
			dx := w.axisNoise3(0, x*freq, y*freq, z*freq) * amp
			dy := w.axisNoise3(1, x*freq, y*freq, z*freq) * amp
			dz := w.axisNoise3(2, x*freq, y*freq, z*freq) * amp
			x += dx
			y += dy
			z += dz
			freq *= w.cfg.Lacunarity
			amp *= w.cfg.Gain
		}
		return x, y, z
	}
}
