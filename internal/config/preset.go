package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"terraforge/internal/noise"
	"terraforge/internal/terrain"
)

// Preset is the on-disk YAML form of a full generation snapshot.
// Every field is optional; zero values fall back to the documented
// defaults, and unknown enum strings fall back the same way the
// runtime parsers do.
type Preset struct {
	Noise      NoisePreset `yaml:"noise"`
	Grid       GridPreset  `yaml:"grid"`
	Expression string      `yaml:"expression"`
	Smooth     bool        `yaml:"smooth"`
}

// NoisePreset mirrors noise.Config with string enums.
type NoisePreset struct {
	Type      string        `yaml:"type"`
	Seed      int64         `yaml:"seed"`
	Frequency float64       `yaml:"frequency"`
	Fractal   FractalPreset `yaml:"fractal"`
	Warp      *WarpPreset   `yaml:"warp"`
}

type FractalPreset struct {
	Type             string  `yaml:"type"`
	Octaves          int     `yaml:"octaves"`
	Lacunarity       float64 `yaml:"lacunarity"`
	Gain             float64 `yaml:"gain"`
	WeightedStrength float64 `yaml:"weighted_strength"`
	PingPongStrength float64 `yaml:"ping_pong_strength"`
}

type WarpPreset struct {
	Type       string  `yaml:"type"`
	Amplitude  float64 `yaml:"amplitude"`
	Seed       int64   `yaml:"seed"`
	Frequency  float64 `yaml:"frequency"`
	Fractal    string  `yaml:"fractal"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
}

type GridPreset struct {
	SizeX          int     `yaml:"size_x"`
	SizeY          int     `yaml:"size_y"`
	SizeZ          int     `yaml:"size_z"`
	Isolevel       float64 `yaml:"isolevel"`
	Amplitude      float64 `yaml:"amplitude"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	OffsetX        float64 `yaml:"offset_x"`
	OffsetZ        float64 `yaml:"offset_z"`
	Use3D          bool    `yaml:"use_3d"`
}

// LoadPreset reads and decodes a YAML preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Params converts the preset into a generation snapshot, filling in
// defaults for anything the file left out.
func (p *Preset) Params() terrain.Params {
	cfg := noise.DefaultConfig(p.Noise.Seed)
	if p.Noise.Type != "" {
		cfg.Base = noise.BaseFromString(p.Noise.Type)
	}
	if p.Noise.Frequency != 0 {
		cfg.Frequency = p.Noise.Frequency
	}
	f := p.Noise.Fractal
	if f.Type != "" {
		cfg.Fractal.Kind = noise.FractalKindFromString(f.Type)
	}
	if f.Octaves != 0 {
		cfg.Fractal.Octaves = f.Octaves
	}
	if f.Lacunarity != 0 {
		cfg.Fractal.Lacunarity = f.Lacunarity
	}
	if f.Gain != 0 {
		cfg.Fractal.Gain = f.Gain
	}
	cfg.Fractal.WeightedStrength = f.WeightedStrength
	if f.PingPongStrength != 0 {
		cfg.Fractal.PingPongStrength = f.PingPongStrength
	}
	if w := p.Noise.Warp; w != nil {
		cfg.Warp = &noise.WarpConfig{
			Type:       noise.WarpTypeFromString(w.Type),
			Amplitude:  w.Amplitude,
			Seed:       w.Seed,
			Frequency:  w.Frequency,
			Fractal:    noise.WarpFractalFromString(w.Fractal),
			Octaves:    w.Octaves,
			Lacunarity: w.Lacunarity,
			Gain:       w.Gain,
		}
	}

	g := terrain.GridSpec{
		SizeX:          p.Grid.SizeX,
		SizeY:          p.Grid.SizeY,
		SizeZ:          p.Grid.SizeZ,
		Isolevel:       p.Grid.Isolevel,
		Amplitude:      p.Grid.Amplitude,
		VerticalOffset: p.Grid.VerticalOffset,
		OffsetX:        p.Grid.OffsetX,
		OffsetZ:        p.Grid.OffsetZ,
		Use3D:          p.Grid.Use3D,
	}
	if g.SizeX == 0 {
		g.SizeX = 64
	}
	if g.SizeY == 0 {
		g.SizeY = 64
	}
	if g.SizeZ == 0 {
		g.SizeZ = 64
	}
	if g.Amplitude == 0 {
		g.Amplitude = 10
	}
	max := GetMaxGridSize()
	if g.SizeX > max {
		g.SizeX = max
	}
	if g.SizeY > max {
		g.SizeY = max
	}
	if g.SizeZ > max {
		g.SizeZ = max
	}

	expr := p.Expression
	if expr == "" {
		expr = "N"
	}

	return terrain.Params{
		Noise:      cfg,
		Grid:       g,
		Expression: expr,
		Smooth:     p.Smooth,
	}
}
