package noise

import (
	"math"
	"math/rand"
	"testing"
)

func warpedConfig(seed int64, fractal WarpFractal) Config {
	cfg := DefaultConfig(seed)
	cfg.Warp = &WarpConfig{
		Type:       WarpOpenSimplex2,
		Amplitude:  30,
		Seed:       seed + 5,
		Frequency:  0.01,
		Fractal:    fractal,
		Octaves:    4,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
	return cfg
}

// TestWarpZeroAmplitudeNoOp verifies a zero-amplitude warp leaves coordinates untouched
func TestWarpZeroAmplitudeNoOp(t *testing.T) {
	plain := NewSampler(DefaultConfig(42))

	cfg := DefaultConfig(42)
	cfg.Warp = &WarpConfig{Type: WarpOpenSimplex2, Amplitude: 0, Frequency: 0.01}
	warped := NewSampler(cfg)

	for i := 0; i < 100; i++ {
		x := float64(i) * 3.1
		y := float64(i) * 1.7
		a, b := plain.Sample2(x, y), warped.Sample2(x, y)
		if math.Float64bits(a) != math.Float64bits(b) {
			t.Fatalf("zero-amplitude warp changed output at (%f, %f): %v != %v", x, y, a, b)
		}
	}
}

// TestWarpChangesOutput verifies an active warp actually displaces the field
func TestWarpChangesOutput(t *testing.T) {
	plain := NewSampler(DefaultConfig(42))
	warped := NewSampler(warpedConfig(42, WarpFractalNone))

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i) * 3.1
		y := float64(i) * 1.7
		if plain.Sample2(x, y) == warped.Sample2(x, y) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("warped field agrees with plain field at %d/100 points", same)
	}
}

// TestWarpDeterministic verifies warped sampling is reproducible across instances
func TestWarpDeterministic(t *testing.T) {
	fractals := []WarpFractal{WarpFractalNone, WarpFractalProgressive, WarpFractalIndependent}
	types := []WarpType{WarpOpenSimplex2, WarpOpenSimplex2Reduced, WarpBasicGrid}

	rng := rand.New(rand.NewSource(4242))
	for _, wf := range fractals {
		for _, wt := range types {
			cfg := warpedConfig(7, wf)
			cfg.Warp.Type = wt
			a := NewSampler(cfg)
			b := NewSampler(cfg)

			for i := 0; i < 100; i++ {
				x := rng.Float64()*400 - 200
				y := rng.Float64()*400 - 200
				z := rng.Float64()*400 - 200
				if va, vb := a.Sample2(x, y), b.Sample2(x, y); va != vb {
					t.Fatalf("type=%d fractal=%d Sample2 not reproducible: %v != %v", wt, wf, va, vb)
				}
				if va, vb := a.Sample3(x, y, z), b.Sample3(x, y, z); va != vb {
					t.Fatalf("type=%d fractal=%d Sample3 not reproducible: %v != %v", wt, wf, va, vb)
				}
			}
		}
	}
}

// TestWarpProgressiveDiffersFromIndependent verifies the two octave
// accumulation modes produce distinct fields
func TestWarpProgressiveDiffersFromIndependent(t *testing.T) {
	prog := NewSampler(warpedConfig(9, WarpFractalProgressive))
	indep := NewSampler(warpedConfig(9, WarpFractalIndependent))

	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*5.3 + 0.7
		y := float64(i)*2.1 - 3.2
		if prog.Sample2(x, y) == indep.Sample2(x, y) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("progressive and independent warp agree at %d/100 points", same)
	}
}

// TestWarpAxesReadSameInput verifies both axis displacements of one octave
// are evaluated at the pre-octave coordinates, not at a half-updated
// position
func TestWarpAxesReadSameInput(t *testing.T) {
	cfg := WarpConfig{
		Type:      WarpOpenSimplex2,
		Amplitude: 25,
		Seed:      4,
		Frequency: 0.03,
	}
	w := newWarper(cfg)

	for i := 0; i < 100; i++ {
		x := float64(i)*7.7 - 350
		y := float64(i)*3.1 - 140

		wantX := x + w.axisNoise2(0, x*cfg.Frequency, y*cfg.Frequency)*cfg.Amplitude
		wantY := y + w.axisNoise2(1, x*cfg.Frequency, y*cfg.Frequency)*cfg.Amplitude

		gx, gy := w.warp2(x, y)
		if gx != wantX || gy != wantY {
			t.Fatalf("warp2(%f, %f) = (%v, %v), want (%v, %v): Y displacement must not see the displaced X",
				x, y, gx, gy, wantX, wantY)
		}
	}

	z := 12.5
	for i := 0; i < 100; i++ {
		x := float64(i)*5.3 - 260
		y := float64(i)*1.9 - 90

		fx, fy, fz := x*cfg.Frequency, y*cfg.Frequency, z*cfg.Frequency
		wantX := x + w.axisNoise3(0, fx, fy, fz)*cfg.Amplitude
		wantY := y + w.axisNoise3(1, fx, fy, fz)*cfg.Amplitude
		wantZ := z + w.axisNoise3(2, fx, fy, fz)*cfg.Amplitude

		gx, gy, gz := w.warp3(x, y, z)
		if gx != wantX || gy != wantY || gz != wantZ {
			t.Fatalf("warp3(%f, %f, %f) = (%v, %v, %v), want (%v, %v, %v)",
				x, y, z, gx, gy, gz, wantX, wantY, wantZ)
		}
	}
}

// TestWarpDisplacementBounded verifies warp displacement magnitude stays
// within the configured amplitude
func TestWarpDisplacementBounded(t *testing.T) {
	cfg := warpedConfig(3, WarpFractalIndependent)
	w := newWarper(*cfg.Warp)

	rng := rand.New(rand.NewSource(55))
	for i := 0; i < 500; i++ {
		x := rng.Float64()*1000 - 500
		y := rng.Float64()*1000 - 500
		wx, wy := w.warp2(x, y)

		// Sum of octave amplitudes is normalized back to Amplitude.
		limit := cfg.Warp.Amplitude + 1e-9
		if math.Abs(wx-x) > limit || math.Abs(wy-y) > limit {
			t.Fatalf("displacement (%f, %f) exceeds amplitude %f",
				wx-x, wy-y, cfg.Warp.Amplitude)
		}
	}
}

// TestWarpContinuity verifies the warped field has no large jumps over
// small coordinate steps
func TestWarpContinuity(t *testing.T) {
	s := NewSampler(warpedConfig(13, WarpFractalProgressive))

	const step = 1e-4
	prev := s.Sample2(0, 0)
	for i := 1; i < 2000; i++ {
		cur := s.Sample2(float64(i)*step, 0)
		if d := math.Abs(cur - prev); d > 0.05 {
			t.Fatalf("jump of %f over step %f at x=%f", d, step, float64(i)*step)
		}
		prev = cur
	}
}
