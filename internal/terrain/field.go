package terrain

import (
	"terraforge/internal/expr"
	"terraforge/internal/noise"
)

// carveSeedOffset separates the secondary carve field from the base
// field so the two never correlate.
const carveSeedOffset = 1000

// DensityFunc is any signed scalar field over grid coordinates.
// Negative means inside solid, positive outside, zero on the surface.
type DensityFunc interface {
	Density(x, y, z float64) float64
}

// DensityFn adapts a plain function into a DensityFunc.
type DensityFn func(x, y, z float64) float64

func (f DensityFn) Density(x, y, z float64) float64 { return f(x, y, z) }

// Field composes a noise sampler and the scalar expression transform
// into a density function over grid coordinates. A Field is built
// once per regeneration from an atomically captured parameter
// snapshot and is not safe for concurrent samplers — each
// regeneration owns its own instance.
type Field struct {
	grid  GridSpec
	base  *noise.Sampler
	carve *noise.Sampler
	expr  *expr.Expr

	evalErr error
}

// NewField builds a Field. A malformed expression never fails the
// build: the transform falls back to identity and the error stays
// observable through EvalErr.
func NewField(cfg noise.Config, grid GridSpec, expression string) *Field {
	carveCfg := noise.Config{
		Base:      cfg.Base,
		Seed:      cfg.Seed + carveSeedOffset,
		Frequency: cfg.Frequency,
	}
	f := &Field{
		grid:  grid,
		base:  noise.NewSampler(cfg),
		carve: noise.NewSampler(carveCfg),
	}
	if expression != "" {
		e, err := expr.Parse(expression)
		if err != nil {
			f.evalErr = err
		} else {
			f.expr = e
		}
	}
	return f
}

// EvalErr returns the first expression failure observed, or nil. The
// fallback value keeps the field renderable; this keeps the failure
// visible to callers and tests.
func (f *Field) EvalErr() error { return f.evalErr }

// transform runs the user expression over one noise scalar, falling
// back to the raw value on any failure.
func (f *Field) transform(n float64) float64 {
	if f.expr == nil {
		return n
	}
	v, err := f.expr.Eval(n)
	if err != nil {
		if f.evalErr == nil {
			f.evalErr = err
		}
		return n
	}
	return v
}

// Density evaluates the signed field at centered grid coordinates.
// In height mode the value is the distance above the terrain surface;
// in volumetric mode it is the transformed, sign-flipped noise scalar.
func (f *Field) Density(x, y, z float64) float64 {
	if f.grid.Use3D {
		n := f.base.Sample3(x+f.grid.OffsetX, y, z+f.grid.OffsetZ)
		return f.transform(-n)
	}
	return y - f.HeightAt(x, z)
}

// HeightAt returns the 2D-mode terrain height for a column.
func (f *Field) HeightAt(x, z float64) float64 {
	n := f.base.Sample2(x+f.grid.OffsetX, z+f.grid.OffsetZ)
	return f.grid.VerticalOffset + f.transform(n)*f.grid.Amplitude
}

// CarveAt samples the secondary carve field for a column. Blocky 2D
// enumeration drops the whole column when this value does not exceed
// the isolevel; smooth and volumetric modes ignore it.
func (f *Field) CarveAt(x, z float64) float64 {
	return f.carve.Sample2(x+f.grid.OffsetX, z+f.grid.OffsetZ)
}

// Grid returns the sampling domain the field was built for.
func (f *Field) Grid() GridSpec { return f.grid }
