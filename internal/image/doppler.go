package image

import (
	"math"
	randv2 "math/rand/v2"
)

// Color Doppler convention: the transducer sits at the sector apex, so
// inflow from the atria moves away from it and maps to blue. Red appears
// only as an aliasing tint where the simulated jet is fastest.

const flowNoiseSigma = 0.05

// FlowOverlay returns an RGB flow map (interleaved, 3 channels, values in
// [0,1]) for one frame. Outside diastole, or away from the valve inflow
// regions, every channel is zero. The rng drives the per-pixel Doppler
// noise inside active flow regions.
func FlowOverlay(width, height int, model *Model, systoleFactor, phase float64, rng *randv2.Rand) []float64 {
	flow := make([]float64, width*height*3)
	diastole := 1 - systoleFactor
	if diastole <= 0.3 {
		return flow
	}

	// E-wave pulsation modulates the mitral jet over the cycle.
	eWave := math.Sin(phase*2*math.Pi)*0.5 + 0.5
	mitralIntensity := diastole * eWave

	mv := model.Valve(MitralValve, systoleFactor)
	tv := model.Valve(TricuspidValve, systoleFactor)

	h := float64(height)
	mvRadius := h * 0.104
	mvFast := h * 0.042
	mvAbove := int(h * 0.0625)
	mvBelow := int(h * 0.125)
	tvRadius := h * 0.083
	tvAbove := int(h * 0.052)
	tvBelow := int(h * 0.104)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			active := false

			mvDist := math.Hypot(float64(x-mv.X), float64(y-mv.Y))
			if mvDist < mvRadius && y > mv.Y-mvAbove && y < mv.Y+mvBelow {
				flow[i+2] = clamp01(mitralIntensity * 0.9)
				if mvDist < mvFast {
					// Aliasing tint at the jet core.
					flow[i] = clamp01(mitralIntensity * 0.3)
				}
				active = true
			}

			tvDist := math.Hypot(float64(x-tv.X), float64(y-tv.Y))
			if tvDist < tvRadius && y > tv.Y-tvAbove && y < tv.Y+tvBelow {
				flow[i+2] = clamp01(diastole * 0.7)
				active = true
			}

			if active {
				for c := 0; c < 3; c++ {
					flow[i+c] = clamp01(flow[i+c] + rng.NormFloat64()*flowNoiseSigma)
				}
			}
		}
	}
	return flow
}
