package noise

import "math"

// Lattice value noise on SplitMix64-style integer hashing. No tables,
// no allocation, stable across runs for the same seed.

// fade is the smoothstep-like curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x, y int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// latticeValue2 maps a lattice point to [-1,1].
func latticeValue2(x, y int64, seed int64) float64 {
	h := hash2(x, y, seed)
	return float64(h&0xFFFFFFFF)/float64(0xFFFFFFFF)*2 - 1
}

func latticeValue3(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF)/float64(0xFFFFFFFF)*2 - 1
}

func valueNoise2(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)

	fx := fade(x - x0)
	fy := fade(y - y0)

	ix := int64(x0)
	iy := int64(y0)

	v00 := latticeValue2(ix, iy, seed)
	v10 := latticeValue2(ix+1, iy, seed)
	v01 := latticeValue2(ix, iy+1, seed)
	v11 := latticeValue2(ix+1, iy+1, seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
}

func valueNoise3(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	ix := int64(x0)
	iy := int64(y0)
	iz := int64(z0)

	v000 := latticeValue3(ix, iy, iz, seed)
	v100 := latticeValue3(ix+1, iy, iz, seed)
	v010 := latticeValue3(ix, iy+1, iz, seed)
	v110 := latticeValue3(ix+1, iy+1, iz, seed)
	v001 := latticeValue3(ix, iy, iz+1, seed)
	v101 := latticeValue3(ix+1, iy, iz+1, seed)
	v011 := latticeValue3(ix, iy+1, iz+1, seed)
	v111 := latticeValue3(ix+1, iy+1, iz+1, seed)

	i00 := lerp(v000, v100, fx)
	i10 := lerp(v010, v110, fx)
	i01 := lerp(v001, v101, fx)
	i11 := lerp(v011, v111, fx)

	return lerp(lerp(i00, i10, fy), lerp(i01, i11, fy), fz)
}

// cubicInterp is a Catmull-Rom style 4-point interpolation. Smoother
// than the fade curve at the cost of a wider lattice footprint; the
// result can slightly overshoot [-1,1].
func cubicInterp(a, b, c, d, t float64) float64 {
	p := (d - c) - (a - b)
	return b + t*(c-a+t*((a-b)-p+t*p))*0.5
}

// Catmull-Rom can overshoot by up to 1.5x per axis; the bounding
// factors pull the composite back into [-1,1].
const (
	cubicBounding2 = 1.0 / (1.5 * 1.5)
	cubicBounding3 = 1.0 / (1.5 * 1.5 * 1.5)
)

func valueCubicNoise2(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := x - x0
	ty := y - y0
	ix := int64(x0)
	iy := int64(y0)

	var rows [4]float64
	for j := int64(-1); j <= 2; j++ {
		rows[j+1] = cubicInterp(
			latticeValue2(ix-1, iy+j, seed),
			latticeValue2(ix, iy+j, seed),
			latticeValue2(ix+1, iy+j, seed),
			latticeValue2(ix+2, iy+j, seed),
			tx)
	}
	return cubicInterp(rows[0], rows[1], rows[2], rows[3], ty) * cubicBounding2
}

func valueCubicNoise3(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	tx := x - x0
	ty := y - y0
	tz := z - z0
	ix := int64(x0)
	iy := int64(y0)
	iz := int64(z0)

	var slabs [4]float64
	for k := int64(-1); k <= 2; k++ {
		var rows [4]float64
		for j := int64(-1); j <= 2; j++ {
			rows[j+1] = cubicInterp(
				latticeValue3(ix-1, iy+j, iz+k, seed),
				latticeValue3(ix, iy+j, iz+k, seed),
				latticeValue3(ix+1, iy+j, iz+k, seed),
				latticeValue3(ix+2, iy+j, iz+k, seed),
				tx)
		}
		slabs[k+1] = cubicInterp(rows[0], rows[1], rows[2], rows[3], ty)
	}
	return cubicInterp(slabs[0], slabs[1], slabs[2], slabs[3], tz) * cubicBounding3
}
