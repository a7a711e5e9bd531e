// Package image implements the echocardiography frame synthesis pipeline:
// sector geometry, speckle noise, cardiac anatomy rendering, color Doppler
// overlays and the frame compositor.
package image

import (
	"fmt"
	"math"
)

// Geometry holds the per-run sector geometry: the fan-shaped imaging mask and
// the normalized distance/angle maps reused by attenuation and resolution
// falloff. It is a pure function of its inputs and is computed once per run.
type Geometry struct {
	Width  int
	Height int

	// Mask is 1.0 inside the sector, 0.0 outside, with a softened boundary.
	Mask []float64
	// DistanceMap is the radial distance from the apex, normalized to [0,1]
	// over [minRadius, maxRadius].
	DistanceMap []float64
	// AngleMap is |angle from the sector axis| / halfAngle, clipped to [0,1].
	AngleMap []float64

	// ApexX, ApexY is the virtual transducer position.
	ApexX float64
	ApexY float64
	// MaxDist is the far edge of the imaging range in pixels.
	MaxDist float64
}

// ComputeSector builds the sector geometry for the given raster size and
// probe opening angle. The apex sits at top-center (2% of height down), the
// imaging range spans [minRadiusFrac, maxRadiusFrac] of the raster height.
// Identical inputs produce bit-identical output.
func ComputeSector(width, height int, angleDeg, minRadiusFrac, maxRadiusFrac float64) (*Geometry, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sector dimensions must be > 0, got %dx%d", width, height)
	}
	if angleDeg <= 0 || angleDeg >= 180 {
		return nil, fmt.Errorf("sector angle must be in (0, 180) degrees, got %g", angleDeg)
	}
	if minRadiusFrac < 0 || maxRadiusFrac <= minRadiusFrac {
		return nil, fmt.Errorf("invalid radius range [%g, %g]", minRadiusFrac, maxRadiusFrac)
	}

	g := &Geometry{
		Width:  width,
		Height: height,
		ApexX:  float64(width) / 2,
		ApexY:  float64(height) * 0.02,
	}

	halfAngle := angleDeg / 2 * math.Pi / 180
	minDist := float64(height) * minRadiusFrac
	maxDist := float64(height) * maxRadiusFrac
	g.MaxDist = maxDist

	n := width * height
	g.Mask = make([]float64, n)
	g.DistanceMap = make([]float64, n)
	g.AngleMap = make([]float64, n)

	for y := 0; y < height; y++ {
		dy := float64(y) - g.ApexY
		for x := 0; x < width; x++ {
			dx := float64(x) - g.ApexX
			i := y*width + x

			// Angle measured from the downward axis through the apex.
			angle := math.Atan2(dx, dy)
			dist := math.Sqrt(dx*dx + dy*dy)

			if math.Abs(angle) <= halfAngle && dist >= minDist && dist <= maxDist {
				g.Mask[i] = 1
			}

			d := (dist - minDist) / (maxDist - minDist)
			g.DistanceMap[i] = clamp01(d)

			a := math.Abs(angle) / halfAngle
			g.AngleMap[i] = clamp01(a)
		}
	}

	// Soften the fan boundary so the mask multiply does not alias.
	g.Mask = gaussianBlur(g.Mask, width, height, 2, 2)

	return g, nil
}

func clamp01(v float64) float64 {
	// NaN compares false on both sides and falls through to 0.
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
