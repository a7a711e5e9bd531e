package image

import "math"

// gaussianBlur applies a separable Gaussian blur to a float raster. Edges are
// clamped (the nearest in-bounds sample is repeated). A sigma <= 0 skips that
// axis, which is how the lateral falloff gets its horizontal-only blur.
func gaussianBlur(src []float64, width, height int, sigmaX, sigmaY float64) []float64 {
	out := src
	if sigmaX > 0 {
		out = convolveAxis(out, width, height, gaussianKernel(sigmaX), true)
	}
	if sigmaY > 0 {
		out = convolveAxis(out, width, height, gaussianKernel(sigmaY), false)
	}
	if sigmaX <= 0 && sigmaY <= 0 {
		out = make([]float64, len(src))
		copy(out, src)
	}
	return out
}

// gaussianKernel returns a normalized 1D kernel with radius ceil(3*sigma).
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolveAxis(src []float64, width, height int, kernel []float64, horizontal bool) []float64 {
	out := make([]float64, len(src))
	radius := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			acc := 0.0
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+k, 0, width-1)
				} else {
					sy = clampInt(y+k, 0, height-1)
				}
				acc += src[sy*width+sx] * kernel[k+radius]
			}
			out[y*width+x] = acc
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
