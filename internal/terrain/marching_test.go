package terrain

import (
	"math"
	"testing"
)

func sphereField(radius float64) DensityFunc {
	return DensityFn(func(x, y, z float64) float64 {
		return math.Sqrt(x*x+y*y+z*z) - radius
	})
}

// TestExtractSphere verifies the mesher produces a closed surface whose
// vertices sit on the sphere
func TestExtractSphere(t *testing.T) {
	grid := GridSpec{SizeX: 20, SizeY: 20, SizeZ: 20, Use3D: true}
	const radius = 6.0
	mesh := Extract(grid, sphereField(radius), 0)

	if mesh.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}
	if len(mesh.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(mesh.Indices))
	}
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Fatalf("normal count %d != vertex count %d", len(mesh.Normals), len(mesh.Vertices))
	}

	// Every vertex within interpolation tolerance of the radius.
	for i, v := range mesh.Vertices {
		r := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
		if math.Abs(r-radius) > 0.1 {
			t.Fatalf("vertex %d at radius %f, want %f ± 0.1", i, r, radius)
		}
	}

	// Closed surface: every undirected edge is shared by exactly two
	// triangles.
	edgeUse := make(map[[2]uint32]int)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		tri := [3]uint32{mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]}
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			edgeUse[[2]uint32{a, b}]++
		}
	}
	for edge, uses := range edgeUse {
		if uses != 2 {
			t.Fatalf("edge %v used by %d triangles, want 2", edge, uses)
		}
	}
}

// TestExtractSphereNormalsOutward verifies gradient normals are unit length
// and point away from the sphere center
func TestExtractSphereNormalsOutward(t *testing.T) {
	grid := GridSpec{SizeX: 20, SizeY: 20, SizeZ: 20, Use3D: true}
	mesh := Extract(grid, sphereField(6), 0)
	if mesh.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}

	for i, n := range mesh.Normals {
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if math.Abs(length-1) > 1e-3 {
			t.Fatalf("normal %d has length %f", i, length)
		}
		v := mesh.Vertices[i]
		dot := float64(n[0]*v[0] + n[1]*v[1] + n[2]*v[2])
		if dot <= 0 {
			t.Fatalf("normal %d points inward (dot %f)", i, dot)
		}
	}
}

// TestExtractDeterministic verifies two extractions agree exactly
func TestExtractDeterministic(t *testing.T) {
	grid := GridSpec{SizeX: 12, SizeY: 12, SizeZ: 12, Use3D: true}
	a := Extract(grid, sphereField(4), 0)
	b := Extract(grid, sphereField(4), 0)

	if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("mesh sizes differ: %d/%d vertices, %d/%d indices",
			len(a.Vertices), len(b.Vertices), len(a.Indices), len(b.Indices))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs: %v != %v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs: %d != %d", i, a.Indices[i], b.Indices[i])
		}
	}
}

// TestExtractNoCrossingIsEmpty verifies a field with no isosurface inside
// the grid yields an empty mesh, which is success, not an error
func TestExtractNoCrossingIsEmpty(t *testing.T) {
	grid := GridSpec{SizeX: 10, SizeY: 10, SizeZ: 10, Use3D: true}
	allAir := DensityFn(func(x, y, z float64) float64 { return 1 })
	allSolid := DensityFn(func(x, y, z float64) float64 { return -1 })

	if mesh := Extract(grid, allAir, 0); !mesh.IsEmpty() {
		t.Errorf("all-air field produced %d vertices", mesh.VertexCount())
	}
	if mesh := Extract(grid, allSolid, 0); !mesh.IsEmpty() {
		t.Errorf("all-solid field produced %d vertices", mesh.VertexCount())
	}
}

// TestExtractDegenerateGrid verifies axes below two sample points yield an
// empty mesh without sampling outside the grid
func TestExtractDegenerateGrid(t *testing.T) {
	grids := []GridSpec{
		{SizeX: 1, SizeY: 10, SizeZ: 10, Use3D: true},
		{SizeX: 10, SizeY: 0, SizeZ: 10, Use3D: true},
		{SizeX: 10, SizeY: 10, SizeZ: 1, Use3D: true},
	}
	for _, grid := range grids {
		mesh := Extract(grid, sphereField(3), 0)
		if !mesh.IsEmpty() {
			t.Errorf("grid %+v produced %d vertices, want empty", grid, mesh.VertexCount())
		}
	}
}

// TestExtractVertexSharing verifies neighboring cells reuse edge vertices
// instead of duplicating them
func TestExtractVertexSharing(t *testing.T) {
	grid := GridSpec{SizeX: 16, SizeY: 16, SizeZ: 16, Use3D: true}
	mesh := Extract(grid, sphereField(5), 0)
	if mesh.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}

	// With dedup each vertex serves several triangles, so the vertex
	// count must come in well under the index count.
	if len(mesh.Vertices) >= len(mesh.Indices) {
		t.Errorf("%d vertices for %d indices, vertices look unshared",
			len(mesh.Vertices), len(mesh.Indices))
	}

	seen := make(map[[3]float32]int)
	for _, v := range mesh.Vertices {
		seen[[3]float32{v[0], v[1], v[2]}]++
	}
	for pos, count := range seen {
		if count > 1 {
			t.Fatalf("position %v stored %d times", pos, count)
		}
	}
}

// TestExtractIsolevelShiftsSurface verifies a higher isolevel grows the
// enclosed sphere volume for a distance field
func TestExtractIsolevelShiftsSurface(t *testing.T) {
	grid := GridSpec{SizeX: 20, SizeY: 20, SizeZ: 20, Use3D: true}
	mesh := Extract(grid, sphereField(5), 2)
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	for i, v := range mesh.Vertices {
		r := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
		if math.Abs(r-7) > 0.1 {
			t.Fatalf("vertex %d at radius %f, want 7 ± 0.1 for isolevel 2", i, r)
		}
	}
}
