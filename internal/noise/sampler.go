package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Sampler evaluates one configured noise field. Every Sampler owns
// its own generator state (one base generator per octave), so
// identical configs always produce bit-identical samples and nothing
// leaks between instances.
type Sampler struct {
	cfg      Config
	gens     []baseGen
	warp     *warper
	bounding float64
}

// baseGen is a single-octave noise source. Library-backed types bake
// their seed into the generator instance; hash-lattice types carry it
// as a plain parameter.
type baseGen struct {
	base    Base
	seed    int64
	simplex opensimplex.Noise
	perl    *perlin.Perlin
}

func newBaseGen(base Base, seed int64) baseGen {
	g := baseGen{base: base, seed: seed}
	switch base {
	case BaseOpenSimplex2:
		g.simplex = opensimplex.New(seed)
	case BaseOpenSimplex2S:
		// The smooth variant: normalized source remapped to [-1,1].
		g.simplex = opensimplex.NewNormalized(seed)
	case BasePerlin:
		g.perl = perlin.NewPerlin(2, 2, 1, seed)
	}
	return g
}

func (g baseGen) eval2(x, y float64) float64 {
	switch g.base {
	case BaseOpenSimplex2S:
		return g.simplex.Eval2(x, y)*2 - 1
	case BasePerlin:
		return g.perl.Noise2D(x, y)
	case BaseCellular:
		return cellularNoise2(x, y, g.seed)
	case BaseValueCubic:
		return valueCubicNoise2(x, y, g.seed)
	case BaseValue:
		return valueNoise2(x, y, g.seed)
	default:
		return g.simplex.Eval2(x, y)
	}
}

func (g baseGen) eval3(x, y, z float64) float64 {
	switch g.base {
	case BaseOpenSimplex2S:
		return g.simplex.Eval3(x, y, z)*2 - 1
	case BasePerlin:
		return g.perl.Noise3D(x, y, z)
	case BaseCellular:
		return cellularNoise3(x, y, z, g.seed)
	case BaseValueCubic:
		return valueCubicNoise3(x, y, z, g.seed)
	case BaseValue:
		return valueNoise3(x, y, z, g.seed)
	default:
		return g.simplex.Eval3(x, y, z)
	}
}

// NewSampler builds a Sampler from a config. Malformed enum values
// fall back to their documented defaults; the constructor never fails.
func NewSampler(cfg Config) *Sampler {
	cfg = cfg.normalized()

	octaves := 1
	if cfg.Fractal.Kind != FractalNone {
		octaves = cfg.Fractal.Octaves
	}
	gens := make([]baseGen, octaves)
	for i := range gens {
		gens[i] = newBaseGen(cfg.Base, cfg.Seed+int64(i))
	}

	s := &Sampler{
		cfg:      cfg,
		gens:     gens,
		bounding: fractalBounding(cfg.Fractal.Gain, octaves),
	}
	if w := cfg.Warp; w != nil && (w.Amplitude != 0 || w.Fractal != WarpFractalNone) {
		s.warp = newWarper(*w)
	}
	return s
}

// fractalBounding normalizes an octave sum by its total amplitude
// weight so the composite stays near [-1,1].
func fractalBounding(gain float64, octaves int) float64 {
	amp := math.Abs(gain)
	ampFractal := 1.0
	for i := 1; i < octaves; i++ {
		ampFractal += amp
		amp *= math.Abs(gain)
	}
	return 1 / ampFractal
}

// Sample2 evaluates the field at (x,y). Result is approximately in
// [-1,1]; some base types may slightly overshoot.
func (s *Sampler) Sample2(x, y float64) float64 {
	if s.warp != nil {
		x, y = s.warp.warp2(x, y)
	}
	fx := x * s.cfg.Frequency
	fy := y * s.cfg.Frequency

	switch s.cfg.Fractal.Kind {
	case FractalFBm:
		return s.fbm(func(g baseGen, m float64) float64 { return g.eval2(fx*m, fy*m) })
	case FractalRidged:
		return s.ridged(func(g baseGen, m float64) float64 { return g.eval2(fx*m, fy*m) })
	case FractalPingPong:
		return s.pingPong(func(g baseGen, m float64) float64 { return g.eval2(fx*m, fy*m) })
	default:
		return s.gens[0].eval2(fx, fy)
	}
}

// Sample3 evaluates the field at (x,y,z).
func (s *Sampler) Sample3(x, y, z float64) float64 {
	if s.warp != nil {
		x, y, z = s.warp.warp3(x, y, z)
	}
	fx := x * s.cfg.Frequency
	fy := y * s.cfg.Frequency
	fz := z * s.cfg.Frequency

	switch s.cfg.Fractal.Kind {
	case FractalFBm:
		return s.fbm(func(g baseGen, m float64) float64 { return g.eval3(fx*m, fy*m, fz*m) })
	case FractalRidged:
		return s.ridged(func(g baseGen, m float64) float64 { return g.eval3(fx*m, fy*m, fz*m) })
	case FractalPingPong:
		return s.pingPong(func(g baseGen, m float64) float64 { return g.eval3(fx*m, fy*m, fz*m) })
	default:
		return s.gens[0].eval3(fx, fy, fz)
	}
}

// eval is one octave sample at the given frequency multiplier.
type octaveEval func(g baseGen, freqMul float64) float64

func (s *Sampler) fbm(eval octaveEval) float64 {
	fc := s.cfg.Fractal
	sum := 0.0
	amp := s.bounding
	mul := 1.0
	for _, g := range s.gens {
		n := eval(g, mul)
		sum += n * amp
		amp *= lerp(1, math.Min(n+1, 2)*0.5, fc.WeightedStrength) * fc.Gain
		mul *= fc.Lacunarity
	}
	return sum
}

func (s *Sampler) ridged(eval octaveEval) float64 {
	fc := s.cfg.Fractal
	sum := 0.0
	amp := s.bounding
	mul := 1.0
	for _, g := range s.gens {
		n := math.Abs(eval(g, mul))
		sum += (n*-2 + 1) * amp
		amp *= lerp(1, 1-n, fc.WeightedStrength) * fc.Gain
		mul *= fc.Lacunarity
	}
	return sum
}

func (s *Sampler) pingPong(eval octaveEval) float64 {
	fc := s.cfg.Fractal
	sum := 0.0
	amp := s.bounding
	mul := 1.0
	for _, g := range s.gens {
		t := (eval(g, mul) + 1) * fc.PingPongStrength
		t -= math.Floor(t*0.5) * 2
		if t > 1 {
			t = 2 - t
		}
		sum += (t - 0.5) * 2 * amp
		amp *= lerp(1, t, fc.WeightedStrength) * fc.Gain
		mul *= fc.Lacunarity
	}
	return sum
}
