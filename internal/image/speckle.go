package image

import (
	"math"
	randv2 "math/rand/v2"
)

// Speckle octave layout, finest first. Coarser octaves are generated at a
// reduced resolution, blurred wider and upsampled by pixel replication, which
// gives the field its multi-scale spatial correlation.
var speckleOctaves = []struct {
	downscale int
	rayleigh  float64
	sigma     float64
	weight    float64
}{
	{downscale: 1, rayleigh: 0.6, sigma: 0.8, weight: 0.50},
	{downscale: 2, rayleigh: 0.5, sigma: 1.2, weight: 0.35},
	{downscale: 4, rayleigh: 0.4, sigma: 1.5, weight: 0.15},
}

// GenerateSpeckle produces a correlated ultrasound speckle field in [0,1].
// The same seed always yields the identical field, so callers choose between
// a static background (shared seed) and evolving speckle (seed + frame
// offset). The field is depth-modulated: speckle grows coarser and stronger
// toward the bottom of the raster.
func GenerateSpeckle(width, height int, seed uint64) []float64 {
	rng := randv2.New(randv2.NewPCG(seed, seed))

	field := make([]float64, width*height)
	for _, oct := range speckleOctaves {
		ow := width / oct.downscale
		oh := height / oct.downscale
		if ow < 1 {
			ow = 1
		}
		if oh < 1 {
			oh = 1
		}

		layer := make([]float64, ow*oh)
		for i := range layer {
			layer[i] = rayleighSample(rng, oct.rayleigh)
		}
		layer = gaussianBlur(layer, ow, oh, oct.sigma, oct.sigma)

		// Nearest-neighbor upsample back to full resolution.
		for y := 0; y < height; y++ {
			sy := y / oct.downscale
			if sy >= oh {
				sy = oh - 1
			}
			for x := 0; x < width; x++ {
				sx := x / oct.downscale
				if sx >= ow {
					sx = ow - 1
				}
				field[y*width+x] += layer[sy*ow+sx] * oct.weight
			}
		}
	}

	// Depth modulation: linear gradient 0.8 at the top to 1.2 at the bottom.
	for y := 0; y < height; y++ {
		depth := 0.8
		if height > 1 {
			depth = 0.8 + 0.4*float64(y)/float64(height-1)
		}
		for x := 0; x < width; x++ {
			field[y*width+x] *= depth
		}
	}

	return normalizeMinMax(field)
}

// rayleighSample draws from a Rayleigh distribution with the given scale via
// inverse transform sampling.
func rayleighSample(rng *randv2.Rand, scale float64) float64 {
	u := rng.Float64()
	if u >= 1 {
		u = math.Nextafter(1, 0)
	}
	return scale * math.Sqrt(-2*math.Log(1-u))
}

// normalizeMinMax rescales a field to span [0,1] in place. A flat field maps
// to zero rather than dividing by zero.
func normalizeMinMax(field []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range field {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span < 1e-8 {
		span = 1e-8
	}
	for i, v := range field {
		field[i] = (v - lo) / span
	}
	return field
}
