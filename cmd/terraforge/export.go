package main

import (
	"bufio"
	"fmt"
	"io"

	"terraforge/internal/terrain"
)

// writeOBJ emits a Wavefront OBJ with per-vertex normals. OBJ indices
// are 1-based.
func writeOBJ(w io.Writer, mesh *terrain.Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X(), v.Y(), v.Z())
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Indices[i] + 1
		b := mesh.Indices[i+1] + 1
		c := mesh.Indices[i+2] + 1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	return bw.Flush()
}

// writeVoxels emits one solid-cell center per line.
func writeVoxels(w io.Writer, set terrain.VoxelSet) error {
	bw := bufio.NewWriter(w)
	for _, v := range set {
		fmt.Fprintf(bw, "%g %g %g\n", v.X(), v.Y(), v.Z())
	}
	return bw.Flush()
}
