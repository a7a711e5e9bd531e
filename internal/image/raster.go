package image

import "math"

// Point is an integer raster coordinate.
type Point struct {
	X, Y int
}

type opKind int

const (
	opEllipse opKind = iota
	opPolygon
	opLine
)

// DrawOp is one fill command on a grayscale canvas. Later ops overwrite
// earlier ones, so order carries meaning.
type DrawOp struct {
	kind      opKind
	x0, y0    int
	x1, y1    int
	pts       []Point
	lineWidth int
	value     float64
}

// EllipseOp fills the axis-aligned ellipse inscribed in the bounding box
// (x0,y0)-(x1,y1) with the given brightness.
func EllipseOp(x0, y0, x1, y1 int, value float64) DrawOp {
	return DrawOp{kind: opEllipse, x0: x0, y0: y0, x1: x1, y1: y1, value: value}
}

// PolygonOp fills the closed polygon with the given brightness.
func PolygonOp(pts []Point, value float64) DrawOp {
	return DrawOp{kind: opPolygon, pts: pts, value: value}
}

// LineOp fills a thick line segment with the given brightness.
func LineOp(x0, y0, x1, y1, width int, value float64) DrawOp {
	return DrawOp{kind: opLine, x0: x0, y0: y0, x1: x1, y1: y1, lineWidth: width, value: value}
}

// Canvas is a float64 grayscale raster with values in [0,1]. Draw commands
// clip at the edges; out-of-bounds pixels are silently discarded.
type Canvas struct {
	Width  int
	Height int
	Pix    []float64
}

// NewCanvas returns a zero-filled canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// Render applies ops in order.
func (c *Canvas) Render(ops []DrawOp) {
	for _, op := range ops {
		switch op.kind {
		case opEllipse:
			c.FillEllipse(op.x0, op.y0, op.x1, op.y1, op.value)
		case opPolygon:
			c.FillPolygon(op.pts, op.value)
		case opLine:
			c.ThickLine(op.x0, op.y0, op.x1, op.y1, op.lineWidth, op.value)
		}
	}
}

func (c *Canvas) set(x, y int, value float64) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pix[y*c.Width+x] = value
}

// FillEllipse fills the ellipse inscribed in the bounding box. Degenerate
// boxes are clamped so at least one pixel is written when the center is
// inside the canvas.
func (c *Canvas) FillEllipse(x0, y0, x1, y1 int, value float64) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := math.Max(float64(x1-x0)/2, 0.5)
	ry := math.Max(float64(y1-y0)/2, 0.5)
	for y := y0; y <= y1+1; y++ {
		for x := x0; x <= x1+1; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.set(x, y, value)
			}
		}
	}
	// Clamped boxes can still miss every pixel center; anchor one pixel.
	c.set(int(math.Round(cx)), int(math.Round(cy)), value)
}

// FillPolygon fills a closed polygon with an even-odd scanline sweep.
func (c *Canvas) FillPolygon(pts []Point, value float64) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= c.Height {
		maxY = c.Height - 1
	}
	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		fy := float64(y) + 0.5
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay <= fy) == (by <= fy) {
				continue
			}
			t := (fy - ay) / (by - ay)
			xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i] - 0.5)); float64(x)+0.5 <= xs[i+1]; x++ {
				c.set(x, y, value)
			}
		}
	}
}

// ThickLine fills a line segment of the given width, rendered as the quad
// spanned by the perpendicular offset. Zero-length segments fill a square.
func (c *Canvas) ThickLine(x0, y0, x1, y1, width int, value float64) {
	if width < 1 {
		width = 1
	}
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	length := math.Hypot(dx, dy)
	if length == 0 {
		half := width / 2
		for y := y0 - half; y <= y0+half; y++ {
			for x := x0 - half; x <= x0+half; x++ {
				c.set(x, y, value)
			}
		}
		return
	}
	// Perpendicular unit vector scaled to half width.
	px := -dy / length * float64(width) / 2
	py := dx / length * float64(width) / 2
	c.FillPolygon([]Point{
		{int(math.Round(float64(x0) + px)), int(math.Round(float64(y0) + py))},
		{int(math.Round(float64(x1) + px)), int(math.Round(float64(y1) + py))},
		{int(math.Round(float64(x1) - px)), int(math.Round(float64(y1) - py))},
		{int(math.Round(float64(x0) - px)), int(math.Round(float64(y0) - py))},
	}, value)
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
