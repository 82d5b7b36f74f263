package config

import (
	"os"
	"path/filepath"
	"testing"

	"terraforge/internal/noise"
)

func writePreset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

// TestLoadPresetFull verifies a complete preset round-trips into Params
func TestLoadPresetFull(t *testing.T) {
	path := writePreset(t, `
noise:
  type: perlin
  seed: 1337
  frequency: 0.05
  fractal:
    type: ridged
    octaves: 5
    lacunarity: 2.5
    gain: 0.4
  warp:
    type: basic_grid
    amplitude: 12
    seed: 9
    frequency: 0.02
    fractal: progressive
    octaves: 3
    lacunarity: 2.0
    gain: 0.5
grid:
  size_x: 32
  size_y: 48
  size_z: 32
  isolevel: 0.1
  amplitude: 8
  vertical_offset: 20
  offset_x: 100
  offset_z: -50
  use_3d: true
expression: "N^2"
smooth: true
`)

	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	p := preset.Params()

	if p.Noise.Base != noise.BasePerlin {
		t.Errorf("Base = %v, want Perlin", p.Noise.Base)
	}
	if p.Noise.Seed != 1337 || p.Noise.Frequency != 0.05 {
		t.Errorf("seed/frequency = %d/%v", p.Noise.Seed, p.Noise.Frequency)
	}
	if p.Noise.Fractal.Kind != noise.FractalRidged || p.Noise.Fractal.Octaves != 5 {
		t.Errorf("fractal = %+v", p.Noise.Fractal)
	}
	if p.Noise.Warp == nil {
		t.Fatal("warp config missing")
	}
	if p.Noise.Warp.Type != noise.WarpBasicGrid || p.Noise.Warp.Fractal != noise.WarpFractalProgressive {
		t.Errorf("warp = %+v", p.Noise.Warp)
	}
	if p.Grid.SizeX != 32 || p.Grid.SizeY != 48 || !p.Grid.Use3D {
		t.Errorf("grid = %+v", p.Grid)
	}
	if p.Grid.VerticalOffset != 20 || p.Grid.OffsetX != 100 || p.Grid.OffsetZ != -50 {
		t.Errorf("grid offsets = %+v", p.Grid)
	}
	if p.Expression != "N^2" || !p.Smooth {
		t.Errorf("expression/smooth = %q/%v", p.Expression, p.Smooth)
	}
}

// TestLoadPresetDefaults verifies an empty preset yields usable defaults
func TestLoadPresetDefaults(t *testing.T) {
	path := writePreset(t, "{}\n")
	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	p := preset.Params()

	if p.Noise.Base != noise.BaseOpenSimplex2 {
		t.Errorf("default base = %v, want OpenSimplex2", p.Noise.Base)
	}
	if p.Noise.Frequency != 0.01 {
		t.Errorf("default frequency = %v, want 0.01", p.Noise.Frequency)
	}
	if p.Grid.SizeX != 64 || p.Grid.SizeY != 64 || p.Grid.SizeZ != 64 {
		t.Errorf("default grid = %+v", p.Grid)
	}
	if p.Grid.Amplitude != 10 {
		t.Errorf("default amplitude = %v, want 10", p.Grid.Amplitude)
	}
	if p.Expression != "N" {
		t.Errorf("default expression = %q, want N", p.Expression)
	}
}

// TestLoadPresetUnknownEnumsFallBack verifies unknown enum strings fall back
// instead of failing
func TestLoadPresetUnknownEnumsFallBack(t *testing.T) {
	path := writePreset(t, `
noise:
  type: quantum
  fractal:
    type: fancy
`)
	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	p := preset.Params()
	if p.Noise.Base != noise.BaseOpenSimplex2 {
		t.Errorf("unknown base fell back to %v, want OpenSimplex2", p.Noise.Base)
	}
	if p.Noise.Fractal.Kind != noise.FractalNone {
		t.Errorf("unknown fractal fell back to %v, want None", p.Noise.Fractal.Kind)
	}
}

// TestLoadPresetErrors verifies missing files and bad YAML are reported
func TestLoadPresetErrors(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected an error")
	}
	path := writePreset(t, "grid: [unclosed\n")
	if _, err := LoadPreset(path); err == nil {
		t.Error("malformed YAML: expected an error")
	}
}

// TestPresetGridCap verifies grid sizes are clamped to the configured cap
func TestPresetGridCap(t *testing.T) {
	old := GetMaxGridSize()
	defer SetMaxGridSize(old)
	SetMaxGridSize(32)

	path := writePreset(t, `
grid:
  size_x: 500
  size_y: 16
  size_z: 500
`)
	preset, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	p := preset.Params()
	if p.Grid.SizeX != 32 || p.Grid.SizeZ != 32 {
		t.Errorf("oversize axes not clamped: %+v", p.Grid)
	}
	if p.Grid.SizeY != 16 {
		t.Errorf("in-range axis changed: %+v", p.Grid)
	}
}
