package terrain

import "github.com/go-gl/mathgl/mgl32"

// Mesh is triangle geometry shaped for direct GPU upload: one normal
// per vertex, indices in triples with counter-clockwise front faces.
// A zero-vertex Mesh is a valid result, not an error.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// IsEmpty reports whether the mesh carries no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// VoxelSet is the blocky-mode output: one centered grid position per
// solid cell, intended for instanced cube rendering. Produced fresh
// on every regeneration and owned by the caller.
type VoxelSet []mgl32.Vec3
