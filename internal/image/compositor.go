package image

import (
	"math"
	randv2 "math/rand/v2"
)

// Raster is an 8-bit frame ready for compression. Channels is 1 for
// grayscale and 3 for interleaved RGB.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// Compositor assembles complete echo frames from the sector geometry and
// the anatomy model. It carries no per-frame state, so a single value can
// be shared across workers.
type Compositor struct {
	Geometry *Geometry
	Model    *Model
	Seed     uint64
	Doppler  bool
}

// ComposeFrame renders frame number `frame` of a cycle of totalFrames. The
// output depends only on the compositor fields and the two arguments, so
// the same inputs always produce identical bytes.
func (c *Compositor) ComposeFrame(frame, totalFrames int) *Raster {
	w, h := c.Geometry.Width, c.Geometry.Height
	sf := SystoleFactor(frame, totalFrames)
	phase := CyclePhase(frame, totalFrames)

	// Faint speckle floor outside the anatomy.
	img := GenerateSpeckle(w, h, c.Seed+uint64(frame))
	for i := range img {
		img[i] *= 0.15
	}

	// Anatomy overwrites the floor, keeping it where nothing is drawn.
	canvas := &Canvas{Width: w, Height: h, Pix: img}
	canvas.Render(c.Model.StructureOps(sf))
	heart := make([]float64, len(img))
	copy(heart, img)

	// Tissue speckle modulates the structures multiplicatively.
	tissue := GenerateSpeckle(w, h, c.Seed+uint64(frame)+1000)
	for i := range img {
		img[i] = heart[i] * (0.85 + tissue[i]*0.25)
	}

	applyTGC(img, c.Geometry.DistanceMap)
	applyLateralBlur(img, w, h, c.Geometry.DistanceMap)

	for i := range img {
		img[i] = clamp01(img[i] * c.Geometry.Mask[i])
	}

	if !c.Doppler {
		out := &Raster{Width: w, Height: h, Channels: 1, Pix: make([]uint8, w*h)}
		for i, v := range img {
			out.Pix[i] = quantize(v)
		}
		return out
	}

	rng := randv2.New(randv2.NewPCG(c.Seed+uint64(frame)+2000, c.Seed+uint64(frame)+2000))
	flow := FlowOverlay(w, h, c.Model, sf, phase, rng)

	out := &Raster{Width: w, Height: h, Channels: 3, Pix: make([]uint8, w*h*3)}
	for i, gray := range img {
		blood := heart[i] < 0.1
		for ch := 0; ch < 3; ch++ {
			v := gray
			// Flow shows only through blood pools, never through tissue.
			if f := flow[i*3+ch]; blood && f > 0.05 {
				v = f*0.8 + gray*0.2
			}
			out.Pix[i*3+ch] = quantize(v)
		}
	}
	return out
}

// applyTGC boosts deep pixels to counter attenuation: mild suppression in
// the near field, amplification at depth.
func applyTGC(img, dist []float64) {
	for i := range img {
		img[i] *= 0.7 + 0.6*dist[i] + 0.1*math.Sin(dist[i]*math.Pi)
	}
}

// applyLateralBlur degrades horizontal resolution with depth. Each depth
// band blends toward a horizontally blurred copy of the pre-blur image,
// with a triangular weight so adjacent bands cross-fade instead of
// leaving seams.
func applyLateralBlur(img []float64, width, height int, dist []float64) {
	src := make([]float64, len(img))
	copy(src, img)
	for start := 0.3; start < 1.0; start += 0.1 {
		end := start + 0.15
		mid := (start + end) / 2
		halfSpan := (end - start) / 2
		sigma := 0.5 + start*1.5
		blurred := gaussianBlur(src, width, height, sigma, 0)
		for i, d := range dist {
			if d < start || d >= end {
				continue
			}
			w := 1 - math.Abs(d-mid)/halfSpan
			img[i] = img[i]*(1-w) + blurred[i]*w
		}
	}
}

func quantize(v float64) uint8 {
	v = clamp01(v)
	return uint8(math.Round(v * 255))
}
