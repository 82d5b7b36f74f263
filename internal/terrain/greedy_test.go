package terrain

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// TestBlockMeshSingleVoxel verifies one cube emits exactly six quads
func TestBlockMeshSingleVoxel(t *testing.T) {
	grid := GridSpec{SizeX: 4, SizeY: 4, SizeZ: 4, Use3D: true}
	set := VoxelSet{{0.5, 0.5, 0.5}} // cell (2,2,2) centered

	mesh := BuildBlockMesh(grid, set)
	if got := mesh.TriangleCount(); got != 12 {
		t.Fatalf("single voxel: %d triangles, want 12", got)
	}
	if got := mesh.VertexCount(); got != 24 {
		t.Fatalf("single voxel: %d vertices, want 24 (4 per face)", got)
	}

	// All corners of a unit cube around the voxel center.
	for i, v := range mesh.Vertices {
		for axis := 0; axis < 3; axis++ {
			d := math.Abs(float64(v[axis]) - 0.5)
			if math.Abs(d-0.5) > 1e-6 {
				t.Fatalf("vertex %d coordinate %v is not on the cube surface", i, v)
			}
		}
	}
}

// TestBlockMeshMergesSlab verifies a full flat layer collapses to six quads
func TestBlockMeshMergesSlab(t *testing.T) {
	grid := GridSpec{SizeX: 8, SizeY: 8, SizeZ: 8, Use3D: true}
	var set VoxelSet
	for ix := 0; ix < 8; ix++ {
		for iz := 0; iz < 8; iz++ {
			set = append(set, mgl32.Vec3{
				float32(grid.CenteredX(ix)),
				float32(grid.CenteredY(0)),
				float32(grid.CenteredZ(iz)),
			})
		}
	}

	mesh := BuildBlockMesh(grid, set)
	// A solid 8x1x8 slab is a box: 6 merged rectangles, 12 triangles.
	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("slab merged to %d triangles, want 12", got)
	}
}

// TestBlockMeshHidesInteriorFaces verifies faces between two solid cells
// are not emitted
func TestBlockMeshHidesInteriorFaces(t *testing.T) {
	grid := GridSpec{SizeX: 4, SizeY: 4, SizeZ: 4, Use3D: true}
	// Two voxels side by side along X share one hidden face pair.
	set := VoxelSet{
		{-0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5},
	}

	mesh := BuildBlockMesh(grid, set)
	// A 2x1x1 box merges to 6 rectangles, 12 triangles. Without face
	// culling it would be 24.
	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("2x1x1 box: %d triangles, want 12", got)
	}
}

// TestBlockMeshEmpty verifies empty input and degenerate grids produce an
// empty mesh
func TestBlockMeshEmpty(t *testing.T) {
	grid := GridSpec{SizeX: 4, SizeY: 4, SizeZ: 4, Use3D: true}
	if mesh := BuildBlockMesh(grid, nil); !mesh.IsEmpty() {
		t.Errorf("nil set produced %d vertices", mesh.VertexCount())
	}
	bad := GridSpec{SizeX: 0, SizeY: 4, SizeZ: 4}
	if mesh := BuildBlockMesh(bad, VoxelSet{{0, 0, 0}}); !mesh.IsEmpty() {
		t.Errorf("degenerate grid produced %d vertices", mesh.VertexCount())
	}
}

// TestBlockMeshNormalsAxisAligned verifies every emitted normal is a unit
// axis vector
func TestBlockMeshNormalsAxisAligned(t *testing.T) {
	grid := GridSpec{SizeX: 6, SizeY: 6, SizeZ: 6, Use3D: true}
	set := VoxelSet{
		{0.5, 0.5, 0.5},
		{1.5, 0.5, 0.5},
		{0.5, 1.5, 0.5},
	}

	mesh := BuildBlockMesh(grid, set)
	for i, n := range mesh.Normals {
		nonZero := 0
		for axis := 0; axis < 3; axis++ {
			switch n[axis] {
			case 0:
			case 1, -1:
				nonZero++
			default:
				t.Fatalf("normal %d = %v is not axis-aligned", i, n)
			}
		}
		if nonZero != 1 {
			t.Fatalf("normal %d = %v has %d non-zero axes", i, n, nonZero)
		}
	}
}

// TestBlockMeshWindingMatchesNormal verifies triangle winding is CCW when
// viewed from the normal side
func TestBlockMeshWindingMatchesNormal(t *testing.T) {
	grid := GridSpec{SizeX: 4, SizeY: 4, SizeZ: 4, Use3D: true}
	mesh := BuildBlockMesh(grid, VoxelSet{{0.5, 0.5, 0.5}})

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]]
		b := mesh.Vertices[mesh.Indices[i+1]]
		c := mesh.Vertices[mesh.Indices[i+2]]
		n := mesh.Normals[mesh.Indices[i]]

		ab := b.Sub(a)
		ac := c.Sub(a)
		cross := ab.Cross(ac)
		if cross.Dot(n) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", i/3, n)
		}
	}
}
