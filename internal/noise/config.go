package noise

import "strings"

// Base selects the base noise algorithm. The zero value is
// OpenSimplex2, which is also the fallback for unknown names.
type Base int

const (
	BaseOpenSimplex2 Base = iota
	BaseOpenSimplex2S
	BasePerlin
	BaseCellular
	BaseValueCubic
	BaseValue
)

func (b Base) String() string {
	switch b {
	case BaseOpenSimplex2S:
		return "OpenSimplex2S"
	case BasePerlin:
		return "Perlin"
	case BaseCellular:
		return "Cellular"
	case BaseValueCubic:
		return "ValueCubic"
	case BaseValue:
		return "Value"
	default:
		return "OpenSimplex2"
	}
}

// BaseFromString maps a loosely-typed name to a Base. Unknown names
// fall back to OpenSimplex2 rather than failing; the field must stay
// renderable under any configuration.
func BaseFromString(s string) Base {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opensimplex2s":
		return BaseOpenSimplex2S
	case "perlin":
		return BasePerlin
	case "cellular":
		return BaseCellular
	case "valuecubic", "value_cubic":
		return BaseValueCubic
	case "value":
		return BaseValue
	default:
		return BaseOpenSimplex2
	}
}

// FractalKind selects the octave compositing scheme.
type FractalKind int

const (
	FractalNone FractalKind = iota
	FractalFBm
	FractalRidged
	FractalPingPong
)

// FractalKindFromString falls back to None on unknown names.
func FractalKindFromString(s string) FractalKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fbm":
		return FractalFBm
	case "ridged":
		return FractalRidged
	case "pingpong", "ping_pong":
		return FractalPingPong
	default:
		return FractalNone
	}
}

// WarpType selects the noise source used to displace sample
// coordinates before the base field is evaluated.
type WarpType int

const (
	WarpOpenSimplex2 WarpType = iota
	WarpOpenSimplex2Reduced
	WarpBasicGrid
)

// WarpTypeFromString falls back to OpenSimplex2 on unknown names.
func WarpTypeFromString(s string) WarpType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opensimplex2reduced", "opensimplex2_reduced":
		return WarpOpenSimplex2Reduced
	case "basicgrid", "basic_grid":
		return WarpBasicGrid
	default:
		return WarpOpenSimplex2
	}
}

// WarpFractal selects how warp octaves accumulate: Progressive warps
// already-warped coordinates octave by octave, Independent sums
// displacements computed from the original coordinates.
type WarpFractal int

const (
	WarpFractalNone WarpFractal = iota
	WarpFractalProgressive
	WarpFractalIndependent
)

// WarpFractalFromString falls back to None on unknown names.
func WarpFractalFromString(s string) WarpFractal {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "progressive":
		return WarpFractalProgressive
	case "independent":
		return WarpFractalIndependent
	default:
		return WarpFractalNone
	}
}

// FractalConfig holds the octave compositing parameters. When Kind is
// FractalNone the octave parameters are ignored.
type FractalConfig struct {
	Kind             FractalKind
	Octaves          int
	Lacunarity       float64
	Gain             float64
	WeightedStrength float64
	PingPongStrength float64
}

// WarpConfig holds the domain warp parameters. A zero Amplitude
// leaves sample coordinates untouched.
type WarpConfig struct {
	Type       WarpType
	Amplitude  float64
	Seed       int64
	Frequency  float64
	Fractal    WarpFractal
	Octaves    int
	Lacunarity float64
	Gain       float64
}

// Config fully specifies one noise field. It is assembled once per
// regeneration and never mutated afterwards; every Sampler built from
// it owns its own generator state.
type Config struct {
	Base      Base
	Seed      int64
	Frequency float64
	Fractal   FractalConfig
	Warp      *WarpConfig
}

// DefaultConfig returns the documented fallback configuration:
// OpenSimplex2 base noise, no fractal, no warp.
func DefaultConfig(seed int64) Config {
	return Config{
		Base:      BaseOpenSimplex2,
		Seed:      seed,
		Frequency: 0.01,
		Fractal: FractalConfig{
			Kind:             FractalNone,
			Octaves:          3,
			Lacunarity:       2.0,
			Gain:             0.5,
			PingPongStrength: 2.0,
		},
	}
}

// normalized clamps the pieces of a Config that would otherwise make
// sampling meaningless. Octaves below 1 become 1, zero frequency
// stays as given (a constant field is valid, just dull).
func (c Config) normalized() Config {
	if c.Base < BaseOpenSimplex2 || c.Base > BaseValue {
		c.Base = BaseOpenSimplex2
	}
	if c.Fractal.Kind < FractalNone || c.Fractal.Kind > FractalPingPong {
		c.Fractal.Kind = FractalNone
	}
	if c.Fractal.Octaves < 1 {
		c.Fractal.Octaves = 1
	}
	if c.Warp != nil {
		w := *c.Warp
		if w.Type < WarpOpenSimplex2 || w.Type > WarpBasicGrid {
			w.Type = WarpOpenSimplex2
		}
		if w.Fractal < WarpFractalNone || w.Fractal > WarpFractalIndependent {
			w.Fractal = WarpFractalNone
		}
		if w.Octaves < 1 {
			w.Octaves = 1
		}
		c.Warp = &w
	}
	return c
}
