package image

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// BurnScanUI draws the on-screen scanner furniture into the frame in place:
// the acquisition parameter column on the left, the acoustic output indices
// top right, the velocity color bar (color frames only), the depth scale
// bar, and the white sector border. Uses basicfont for simplicity; full
// TrueType rendering can be added later using golang.org/x/image/font/opentype.
func BurnScanUI(r *Raster, heartRate int, depthCM, sectorAngleDeg, mechIndex, thermalIndex float64) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", r.Width, r.Height)
	}
	if r.Channels != 1 && r.Channels != 3 {
		return fmt.Errorf("unsupported channel count %d", r.Channels)
	}
	if len(r.Pix) != r.Width*r.Height*r.Channels {
		return fmt.Errorf("pixel slice length %d does not match %dx%dx%d", len(r.Pix), r.Width, r.Height, r.Channels)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			i := (y*r.Width + x) * r.Channels
			var c color.RGBA
			if r.Channels == 1 {
				g := r.Pix[i]
				c = color.RGBA{g, g, g, 255}
			} else {
				c = color.RGBA{r.Pix[i], r.Pix[i+1], r.Pix[i+2], 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	textGray := color.RGBA{200, 200, 200, 255}
	drawParamColumn(img, heartRate, depthCM, textGray)
	drawText(img, r.Width-90, 10, fmt.Sprintf("TIS%.1f", thermalIndex), textGray)
	drawText(img, r.Width-90, 24, fmt.Sprintf("MI %.1f", mechIndex), textGray)
	if r.Channels == 3 {
		drawVelocityBar(img, r.Width, textGray)
	}
	drawScaleBar(img, r.Width, r.Height, textGray)
	drawSectorBorder(img, r.Width, r.Height, sectorAngleDeg)

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			i := (y*r.Width + x) * r.Channels
			c := img.RGBAAt(x, y)
			if r.Channels == 1 {
				r.Pix[i] = uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
			} else {
				r.Pix[i] = c.R
				r.Pix[i+1] = c.G
				r.Pix[i+2] = c.B
			}
		}
	}
	return nil
}

// drawParamColumn writes the left-hand acquisition readout: probe model,
// frame rate, depth, then the 2D and color-flow parameter groups.
func drawParamColumn(img *image.RGBA, heartRate int, depthCM float64, c color.RGBA) {
	lines := []string{
		"S9-2",
		"32Hz",
		fmt.Sprintf("%.1fcm", depthCM),
		"",
		"2D",
		" 53%",
		" C 46",
		" P Off",
		" HGen",
		"",
		"CF",
		" 40%",
		" 7920Hz",
		" WF 792Hz",
		" 3.3MHz",
		"",
		fmt.Sprintf("HR %d bpm", heartRate),
	}
	for i, line := range lines {
		if line == "" {
			continue
		}
		drawText(img, 10, 10+i*16, line, c)
	}
}

// drawVelocityBar paints the aliasing color bar: red fading to black on the
// top half, black rising to blue on the bottom, with velocity labels.
func drawVelocityBar(img *image.RGBA, width int, textGray color.RGBA) {
	barX := width - 40
	barY := 30
	barHeight := 120
	barWidth := 15
	for i := 0; i < barHeight; i++ {
		ratio := float64(i) / float64(barHeight)
		var red, blue uint8
		if ratio < 0.5 {
			red = uint8(255 * (1 - ratio*2))
		} else {
			blue = uint8(255 * (ratio - 0.5) * 2)
		}
		for x := barX; x < barX+barWidth; x++ {
			img.SetRGBA(x, barY+i, color.RGBA{red, 0, blue, 255})
		}
	}
	drawText(img, barX-5, barY-15, "+92.4", textGray)
	drawText(img, barX+2, barY+barHeight/2-5, "0", textGray)
	drawText(img, barX-5, barY+barHeight+2, "-92.4", textGray)
	drawText(img, barX-5, barY+barHeight+14, "cm/s", textGray)
}

// drawScaleBar paints a 2 cm reference ruler near the bottom edge.
func drawScaleBar(img *image.RGBA, width, height int, c color.RGBA) {
	scaleY := height - 30
	scaleX := width/2 - 50
	scaleLen := 100
	drawSegment(img, scaleX, scaleY, scaleX+scaleLen, scaleY, 2, c)
	drawSegment(img, scaleX, scaleY-5, scaleX, scaleY+5, 1, c)
	drawSegment(img, scaleX+scaleLen, scaleY-5, scaleX+scaleLen, scaleY+5, 1, c)
	drawText(img, scaleX+scaleLen/2-10, scaleY+5, "2 cm", c)
}

// drawSectorBorder traces the imaging sector in white: both edge rays from
// the apex and the far-range arc between them.
func drawSectorBorder(img *image.RGBA, width, height int, angleDeg float64) {
	white := color.RGBA{255, 255, 255, 255}
	cx := width / 2
	cy := int(float64(height) * 0.02)
	radius := float64(height) * 0.92
	half := angleDeg / 2 * math.Pi / 180

	x1 := cx + int(radius*math.Sin(-half))
	y1 := cy + int(radius*math.Cos(-half))
	drawSegment(img, cx, cy+5, x1, y1, 2, white)

	x2 := cx + int(radius*math.Sin(half))
	y2 := cy + int(radius*math.Cos(half))
	drawSegment(img, cx, cy+5, x2, y2, 2, white)

	// Arc sampled densely enough that 1 px steps leave no gaps.
	steps := int(radius * angleDeg * math.Pi / 180)
	for i := 0; i <= steps; i++ {
		a := -half + float64(i)/float64(steps)*2*half
		x := cx + int(radius*math.Sin(a))
		y := cy + int(radius*math.Cos(a))
		setThick(img, x, y, 2, white)
	}
}

// drawSegment draws a straight line of the given thickness by sampling
// along its length.
func drawSegment(img *image.RGBA, x0, y0, x1, y1, thickness int, c color.RGBA) {
	steps := int(math.Hypot(float64(x1-x0), float64(y1-y0)))
	if steps == 0 {
		setThick(img, x0, y0, thickness, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		setThick(img, x, y, thickness, c)
	}
}

func setThick(img *image.RGBA, x, y, thickness int, c color.RGBA) {
	for dy := 0; dy < thickness; dy++ {
		for dx := 0; dx < thickness; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(img.Rect) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
