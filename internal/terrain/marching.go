package terrain

import (
	"context"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// interpEpsilon guards edge interpolation against a near-zero density
// delta; such an edge is treated as crossing at its midpoint.
const interpEpsilon = 1e-9

// Local corner offsets of one cell, bottom face 0-3 then top face
// 4-7, matching the edge and triangle tables.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// edgeCorners names the two corners each of the 12 cell edges joins.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Extract runs marching cubes over the grid and returns the isosurface
// mesh at the given threshold. Grid sizes count sample points; cells
// span adjacent points, so any axis below 2 points yields an empty
// mesh and no ghost layer is ever sampled. An empty mesh is success.
func Extract(grid GridSpec, d DensityFunc, isolevel float64) *Mesh {
	m, _ := extract(context.Background(), grid, d, isolevel)
	return m
}

func extract(ctx context.Context, grid GridSpec, d DensityFunc, isolevel float64) (*Mesh, error) {
	mesh := &Mesh{}
	if grid.SizeX < 2 || grid.SizeY < 2 || grid.SizeZ < 2 {
		return mesh, nil
	}

	sx, sy, sz := grid.SizeX, grid.SizeY, grid.SizeZ
	pointIdx := func(ix, iy, iz int) int { return (ix*sy+iy)*sz + iz }

	// One regeneration owns its own sample cache; the field is never
	// evaluated twice for the same grid point.
	vals := make([]float64, sx*sy*sz)
	for ix := 0; ix < sx; ix++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cx := grid.CenteredX(ix)
		for iy := 0; iy < sy; iy++ {
			cy := grid.CenteredY(iy)
			for iz := 0; iz < sz; iz++ {
				vals[pointIdx(ix, iy, iz)] = d.Density(cx, cy, grid.CenteredZ(iz))
			}
		}
	}

	// Vertices are shared between neighboring cells through their
	// edge identity, keyed by the two sample points the edge joins.
	edgeVerts := make(map[[2]int]uint32)

	vertexOnEdge := func(pa, pb int, ca, cb [3]int) uint32 {
		key := [2]int{pa, pb}
		if pa > pb {
			key = [2]int{pb, pa}
		}
		if idx, ok := edgeVerts[key]; ok {
			return idx
		}

		d0 := vals[pa]
		d1 := vals[pb]
		var t float64
		switch {
		case absf(isolevel-d0) < interpEpsilon:
			t = 0
		case absf(isolevel-d1) < interpEpsilon:
			t = 1
		case absf(d1-d0) < interpEpsilon:
			t = 0.5
		default:
			t = (isolevel - d0) / (d1 - d0)
		}

		px := lerpf(grid.CenteredX(ca[0]), grid.CenteredX(cb[0]), t)
		py := lerpf(grid.CenteredY(ca[1]), grid.CenteredY(cb[1]), t)
		pz := lerpf(grid.CenteredZ(ca[2]), grid.CenteredZ(cb[2]), t)

		ga := gradientAt(vals, grid, ca[0], ca[1], ca[2])
		gb := gradientAt(vals, grid, cb[0], cb[1], cb[2])
		n := normalize(mgl32.Vec3{
			lerpf32(ga[0], gb[0], float32(t)),
			lerpf32(ga[1], gb[1], float32(t)),
			lerpf32(ga[2], gb[2], float32(t)),
		})

		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, mgl32.Vec3{float32(px), float32(py), float32(pz)})
		mesh.Normals = append(mesh.Normals, n)
		edgeVerts[key] = idx
		return idx
	}

	for ix := 0; ix < sx-1; ix++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for iy := 0; iy < sy-1; iy++ {
			for iz := 0; iz < sz-1; iz++ {
				var cubeIndex int
				var corners [8][3]int
				var points [8]int
				for c, off := range cornerOffsets {
					corners[c] = [3]int{ix + off[0], iy + off[1], iz + off[2]}
					points[c] = pointIdx(corners[c][0], corners[c][1], corners[c][2])
					if vals[points[c]] < isolevel {
						cubeIndex |= 1 << c
					}
				}
				if edgeTable[cubeIndex] == 0 {
					continue
				}

				var edgeVertex [12]uint32
				for e := 0; e < 12; e++ {
					if edgeTable[cubeIndex]&(1<<e) == 0 {
						continue
					}
					a := edgeCorners[e][0]
					b := edgeCorners[e][1]
					edgeVertex[e] = vertexOnEdge(points[a], points[b], corners[a], corners[b])
				}

				row := &triTable[cubeIndex]
				for t := 0; row[t] != -1; t += 3 {
					mesh.Indices = append(mesh.Indices,
						edgeVertex[row[t]],
						edgeVertex[row[t+1]],
						edgeVertex[row[t+2]])
				}
			}
		}
	}
	return mesh, nil
}

// gradientAt estimates the density gradient at a sample point with
// central differences, falling back to one-sided differences at the
// grid boundary. The gradient points toward increasing density, which
// is outward under the inside-negative sign convention.
func gradientAt(vals []float64, grid GridSpec, ix, iy, iz int) mgl32.Vec3 {
	sx, sy, sz := grid.SizeX, grid.SizeY, grid.SizeZ
	at := func(x, y, z int) float64 { return vals[(x*sy+y)*sz+z] }

	axis := func(get func(i int) float64, i, size int) float32 {
		switch {
		case i == 0:
			return float32(get(i+1) - get(i))
		case i == size-1:
			return float32(get(i) - get(i-1))
		default:
			return float32(get(i+1)-get(i-1)) * 0.5
		}
	}

	return mgl32.Vec3{
		axis(func(i int) float64 { return at(i, iy, iz) }, ix, sx),
		axis(func(i int) float64 { return at(ix, i, iz) }, iy, sy),
		axis(func(i int) float64 { return at(ix, iy, i) }, iz, sz),
	}
}

// normalize returns the unit vector, or a fixed up vector when the
// gradient is too short to carry a direction.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	len2 := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if len2 < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	inv := 1 / math32.Sqrt(len2)
	return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func lerpf(a, b, t float64) float64 { return a + t*(b-a) }

func lerpf32(a, b, t float32) float32 { return a + t*(b-a) }
