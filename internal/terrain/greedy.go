package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BuildBlockMesh consolidates a VoxelSet into one indexed cube-face
// mesh, merging coplanar faces into maximal rectangles so blocky
// geometry can be drawn without instancing. Interior faces between
// two solid cells are never emitted.
func BuildBlockMesh(grid GridSpec, set VoxelSet) *Mesh {
	mesh := &Mesh{}
	if grid.Degenerate() || len(set) == 0 {
		return mesh
	}

	sizes := [3]int{grid.SizeX, grid.SizeY, grid.SizeZ}
	occ := make([]bool, sizes[0]*sizes[1]*sizes[2])

	solid := func(p [3]int) bool {
		for i := 0; i < 3; i++ {
			if p[i] < 0 || p[i] >= sizes[i] {
				return false
			}
		}
		return occ[(p[0]*sizes[1]+p[1])*sizes[2]+p[2]]
	}

	// Invert the centering to recover integer cell indices.
	for _, v := range set {
		ix := int(math.Round(float64(v.X()) - 0.5 + float64(sizes[0])/2))
		iy := int(math.Round(float64(v.Y()) - 0.5 + float64(sizes[1])/2))
		iz := int(math.Round(float64(v.Z()) - 0.5 + float64(sizes[2])/2))
		if ix < 0 || ix >= sizes[0] || iy < 0 || iy >= sizes[1] || iz < 0 || iz >= sizes[2] {
			continue
		}
		occ[(ix*sizes[1]+iy)*sizes[2]+iz] = true
	}

	for d := 0; d < 3; d++ {
		mergeFaces(mesh, grid, sizes, solid, d, +1)
		mergeFaces(mesh, grid, sizes, solid, d, -1)
	}
	return mesh
}

// mergeFaces runs 2D greedy merging for one face direction: normal
// axis d with the given sign. It sweeps layers along d, builds a
// visibility mask over the in-plane axes, and grows each unvisited
// face into the widest, then tallest, rectangle.
func mergeFaces(mesh *Mesh, grid GridSpec, sizes [3]int, solid func([3]int) bool, d, sign int) {
	u := (d + 1) % 3
	v := (d + 2) % 3
	su, sv := sizes[u], sizes[v]

	centeredAxis := func(axis, index int) float64 {
		switch axis {
		case 0:
			return grid.CenteredX(index)
		case 1:
			return grid.CenteredY(index)
		default:
			return grid.CenteredZ(index)
		}
	}

	mask := make([]bool, su*sv)
	for layer := 0; layer < sizes[d]; layer++ {
		for i := range mask {
			mask[i] = false
		}
		for iu := 0; iu < su; iu++ {
			for iv := 0; iv < sv; iv++ {
				var p [3]int
				p[d] = layer
				p[u] = iu
				p[v] = iv
				if !solid(p) {
					continue
				}
				p[d] += sign
				if !solid(p) {
					mask[iu*sv+iv] = true
				}
			}
		}

		for iu := 0; iu < su; iu++ {
			for iv := 0; iv < sv; iv++ {
				if !mask[iu*sv+iv] {
					continue
				}
				// Widen along v, then grow along u.
				width := 1
				for iv+width < sv && mask[iu*sv+iv+width] {
					width++
				}
				height := 1
			grow:
				for iu+height < su {
					for k := 0; k < width; k++ {
						if !mask[(iu+height)*sv+iv+k] {
							break grow
						}
					}
					height++
				}
				for du := 0; du < height; du++ {
					for dv := 0; dv < width; dv++ {
						mask[(iu+du)*sv+iv+dv] = false
					}
				}

				face := centeredAxis(d, layer) + 0.5*float64(sign)
				loU := centeredAxis(u, iu) - 0.5
				hiU := loU + float64(height)
				loV := centeredAxis(v, iv) - 0.5
				hiV := loV + float64(width)

				emitQuad(mesh, d, u, v, sign, face, loU, hiU, loV, hiV)
			}
		}
	}
}

// emitQuad appends one merged rectangle as two triangles with CCW
// winding facing along the signed normal axis.
func emitQuad(mesh *Mesh, d, u, v, sign int, face, loU, hiU, loV, hiV float64) {
	corner := func(cu, cv float64) mgl32.Vec3 {
		var p mgl32.Vec3
		p[d] = float32(face)
		p[u] = float32(cu)
		p[v] = float32(cv)
		return p
	}
	var normal mgl32.Vec3
	normal[d] = float32(sign)

	base := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices,
		corner(loU, loV), corner(hiU, loV), corner(hiU, hiV), corner(loU, hiV))
	mesh.Normals = append(mesh.Normals, normal, normal, normal, normal)

	if sign > 0 {
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3)
	} else {
		mesh.Indices = append(mesh.Indices,
			base, base+2, base+1,
			base, base+3, base+2)
	}
}
