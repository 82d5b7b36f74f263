package terrain

import (
	"context"
	"testing"

	"terraforge/internal/noise"
)

// Benchmark full blocky enumeration on a mid-size volumetric grid
func BenchmarkEnumerate3D(b *testing.B) {
	cfg := noise.DefaultConfig(42)
	cfg.Fractal.Kind = noise.FractalFBm
	grid := GridSpec{SizeX: 32, SizeY: 32, SizeZ: 32, Use3D: true}
	f := NewField(cfg, grid, "N")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Enumerate(grid, f)
	}
}

// Benchmark height-mode column enumeration
func BenchmarkEnumerateHeight(b *testing.B) {
	cfg := noise.DefaultConfig(42)
	grid := GridSpec{SizeX: 64, SizeY: 32, SizeZ: 64, Amplitude: 10, VerticalOffset: 16}
	f := NewField(cfg, grid, "N")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Enumerate(grid, f)
	}
}

// Benchmark isosurface extraction over a noise density field
func BenchmarkExtract(b *testing.B) {
	cfg := noise.DefaultConfig(42)
	grid := GridSpec{SizeX: 32, SizeY: 32, SizeZ: 32, Use3D: true}
	f := NewField(cfg, grid, "N")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Extract(grid, f, 0)
	}
}

// Benchmark greedy face merging on a typical height-mode voxel set
func BenchmarkBuildBlockMesh(b *testing.B) {
	cfg := noise.DefaultConfig(42)
	grid := GridSpec{SizeX: 64, SizeY: 32, SizeZ: 64, Amplitude: 10, VerticalOffset: 16}
	set := Enumerate(grid, NewField(cfg, grid, "N"))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildBlockMesh(grid, set)
	}
}

// Benchmark one cold end-to-end regeneration
func BenchmarkGenerate(b *testing.B) {
	p := Params{
		Noise:      noise.DefaultConfig(42),
		Grid:       GridSpec{SizeX: 32, SizeY: 32, SizeZ: 32, Amplitude: 8, Use3D: true},
		Expression: "N^2",
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(context.Background(), p); err != nil {
			b.Fatal(err)
		}
	}
}
