package terrain

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Enumerate classifies every grid cell as solid or air and returns
// the centered positions of the solid ones. Output never exceeds the
// grid's cell budget and never leaves the grid bounds.
func Enumerate(grid GridSpec, f *Field) VoxelSet {
	out, _ := enumerate(context.Background(), grid, f)
	return out
}

// enumerate is the context-aware core; it checks for cancellation
// between X slabs so a stale regeneration can bail early.
func enumerate(ctx context.Context, grid GridSpec, f *Field) (VoxelSet, error) {
	if grid.Degenerate() {
		return VoxelSet{}, nil
	}
	out := make(VoxelSet, 0, grid.CellBudget())

	if grid.Use3D {
		for ix := 0; ix < grid.SizeX; ix++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cx := grid.CenteredX(ix)
			for iz := 0; iz < grid.SizeZ; iz++ {
				cz := grid.CenteredZ(iz)
				for iy := 0; iy < grid.SizeY; iy++ {
					if f.Density(cx, grid.CenteredY(iy), cz) > grid.Isolevel {
						out = append(out, mgl32.Vec3{
							float32(cx),
							float32(grid.CenteredY(iy)),
							float32(cz),
						})
					}
				}
			}
		}
		return out, nil
	}

	// Height mode: fill each column from the grid floor up to the
	// terrain height, unless the carve field excludes the column.
	for ix := 0; ix < grid.SizeX; ix++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cx := grid.CenteredX(ix)
		for iz := 0; iz < grid.SizeZ; iz++ {
			cz := grid.CenteredZ(iz)
			if f.CarveAt(cx, cz) <= grid.Isolevel {
				continue
			}
			top := int(math.Floor(f.HeightAt(cx, cz)))
			if top < 0 {
				continue
			}
			if top >= grid.SizeY {
				top = grid.SizeY - 1
			}
			for iy := 0; iy <= top; iy++ {
				out = append(out, mgl32.Vec3{
					float32(cx),
					float32(grid.CenteredY(iy)),
					float32(cz),
				})
			}
		}
	}
	return out, nil
}
