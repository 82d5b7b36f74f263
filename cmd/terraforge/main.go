package main

import (
	"context"
	"flag"
	"log"
	"os"

	"terraforge/internal/config"
	"terraforge/internal/terrain"
)

func main() {
	presetPath := flag.String("preset", "", "path to a YAML preset file")
	outPath := flag.String("o", "terrain.obj", "output path (.obj for meshes, .txt for voxel lists)")
	maxGrid := flag.Int("max-grid", 0, "override the per-axis grid size cap")
	flag.Parse()

	if *maxGrid > 0 {
		config.SetMaxGridSize(*maxGrid)
	}

	var params terrain.Params
	if *presetPath != "" {
		preset, err := config.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		params = preset.Params()
	} else {
		params = (&config.Preset{}).Params()
		log.Printf("No preset given, using defaults (seed %d)", params.Noise.Seed)
	}

	cache := terrain.NewCache()
	result, cached, err := cache.Generate(context.Background(), params)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	if cached {
		log.Printf("Result served from cache (key %x)", result.Key)
	}
	if result.EvalErr != nil {
		log.Printf("Expression fell back to identity: %v", result.EvalErr)
	}
	if result.Timings != nil {
		log.Printf("Pass timings: %s", result.Timings)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	switch {
	case result.Mesh != nil:
		if err := writeOBJ(out, result.Mesh); err != nil {
			log.Fatalf("Failed to write mesh: %v", err)
		}
		log.Printf("Wrote %d vertices, %d triangles to %s",
			result.Mesh.VertexCount(), result.Mesh.TriangleCount(), *outPath)
	case config.GetGreedyMesh():
		mesh := terrain.BuildBlockMesh(params.Grid, result.Voxels)
		if err := writeOBJ(out, mesh); err != nil {
			log.Fatalf("Failed to write mesh: %v", err)
		}
		log.Printf("Wrote %d voxels as %d merged quads to %s",
			len(result.Voxels), mesh.TriangleCount()/2, *outPath)
	default:
		if err := writeVoxels(out, result.Voxels); err != nil {
			log.Fatalf("Failed to write voxels: %v", err)
		}
		log.Printf("Wrote %d voxel centers to %s", len(result.Voxels), *outPath)
	}
}
