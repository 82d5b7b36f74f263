package noise

import "math"

// Worley F1 cellular noise. One feature point per lattice cell,
// placed by the integer hash; the sample value is the distance to the
// nearest feature point remapped to roughly [-1,1].

// featureOffset maps a hash to a [0,1) offset inside a cell.
func featureOffset(h uint64) float64 {
	return float64(h&0xFFFFFF) / float64(0x1000000)
}

func cellularNoise2(x, y float64, seed int64) float64 {
	ix := int64(math.Floor(x))
	iy := int64(math.Floor(y))

	minDist := math.MaxFloat64
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			cx := ix + dx
			cy := iy + dy
			h := hash2(cx, cy, seed)
			px := float64(cx) + featureOffset(h)
			py := float64(cy) + featureOffset(h>>24)
			ddx := px - x
			ddy := py - y
			d := ddx*ddx + ddy*ddy
			if d < minDist {
				minDist = d
			}
		}
	}
	return clampUnit(math.Sqrt(minDist)*2 - 1)
}

func cellularNoise3(x, y, z float64, seed int64) float64 {
	ix := int64(math.Floor(x))
	iy := int64(math.Floor(y))
	iz := int64(math.Floor(z))

	minDist := math.MaxFloat64
	for dz := int64(-1); dz <= 1; dz++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				cx := ix + dx
				cy := iy + dy
				cz := iz + dz
				h := hash3(cx, cy, cz, seed)
				px := float64(cx) + featureOffset(h)
				py := float64(cy) + featureOffset(h>>20)
				pz := float64(cz) + featureOffset(h>>40)
				ddx := px - x
				ddy := py - y
				ddz := pz - z
				d := ddx*ddx + ddy*ddy + ddz*ddz
				if d < minDist {
					minDist = d
				}
			}
		}
	}
	return clampUnit(math.Sqrt(minDist)*2 - 1)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
