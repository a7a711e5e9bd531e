package image

import "math"

// Chamber identifies one of the four cardiac chambers visible in the apical
// four-chamber view.
type Chamber int

const (
	LeftVentricle Chamber = iota
	RightVentricle
	LeftAtrium
	RightAtrium
)

// Valve identifies an atrioventricular valve.
type Valve int

const (
	MitralValve Valve = iota
	TricuspidValve
)

// ChamberContour describes one chamber for a single frame: an outer ellipse
// filled with wall brightness and an inner ellipse filled with cavity
// brightness, both given as bounding boxes so the ventricles can be cut flat
// at the apex. Radii are always OuterR* >= InnerR* >= 0.
type ChamberContour struct {
	CenterX, CenterY int
	OuterRX, OuterRY int
	InnerRX, InnerRY int
	OuterTopY        int
	InnerTopY        int
	WallBrightness   float64
	CavityBrightness float64
}

// ValveState describes a valve for a single frame. Opening is the leaflet
// separation in pixels; it shrinks to zero as the ventricles contract.
type ValveState struct {
	X, Y          int
	Opening       int
	LeafletLength int
}

// Model maps a cycle phase scalar to apical four-chamber geometry. It is a
// deterministic oscillator re-evaluated every frame: ventricles shrink as
// systoleFactor rises, atria expand, and valve openings close. All geometry
// is derived from width/height fractions so the model is resolution
// independent.
type Model struct {
	width  int
	height int
	cx     int
	apexY  int
	baseY  int
	midY   int
}

// NewModel builds the anatomy model for the given raster size.
func NewModel(width, height int) *Model {
	return &Model{
		width:  width,
		height: height,
		cx:     width / 2,
		apexY:  int(float64(height) * 0.08),
		baseY:  int(float64(height) * 0.82),
		midY:   int(float64(height) * 0.48),
	}
}

// CyclePhase maps a frame index to the [0,1) cardiac cycle position.
func CyclePhase(frame, totalFrames int) float64 {
	return float64(frame) / float64(totalFrames)
}

// SystoleFactor maps a frame index to the contraction state in [0,1]. It is
// continuous and periodic with period totalFrames; 1 is peak systole.
func SystoleFactor(frame, totalFrames int) float64 {
	return (math.Sin(2*math.Pi*CyclePhase(frame, totalFrames)) + 1) / 2
}

func (m *Model) fx(frac float64) int { return int(float64(m.width) * frac) }
func (m *Model) fy(frac float64) int { return int(float64(m.height) * frac) }

// Contour returns the chamber geometry for the given contraction state.
func (m *Model) Contour(c Chamber, systoleFactor float64) ChamberContour {
	switch c {
	case LeftVentricle:
		contraction := 0.22 * systoleFactor
		ct := ChamberContour{
			CenterX:          m.cx - m.fx(0.08),
			CenterY:          m.fy(0.30),
			OuterRX:          int(float64(m.fx(0.14)) * (1 - contraction*0.15)),
			OuterRY:          int(float64(m.fy(0.32)) * (1 - contraction*0.1)),
			InnerRX:          int(float64(m.fx(0.10)) * (1 - contraction*0.4)),
			InnerRY:          int(float64(m.fy(0.26)) * (1 - contraction*0.35)),
			OuterTopY:        m.apexY + m.fy(0.031),
			WallBrightness:   145.0 / 255,
			CavityBrightness: 15.0 / 255,
		}
		ct.InnerTopY = ct.OuterTopY + m.fy(0.042)
		return clampContour(ct)
	case RightVentricle:
		contraction := 0.15 * systoleFactor
		ct := ChamberContour{
			CenterX:          m.cx + m.fx(0.12),
			CenterY:          m.fy(0.28),
			OuterRX:          int(float64(m.fx(0.11)) * (1 - contraction*0.15)),
			OuterRY:          int(float64(m.fy(0.28)) * (1 - contraction*0.1)),
			InnerRX:          int(float64(m.fx(0.08)) * (1 - contraction*0.35)),
			InnerRY:          int(float64(m.fy(0.23)) * (1 - contraction*0.3)),
			OuterTopY:        m.apexY + m.fy(0.052),
			WallBrightness:   125.0 / 255,
			CavityBrightness: 18.0 / 255,
		}
		ct.InnerTopY = ct.OuterTopY + m.fy(0.031)
		return clampContour(ct)
	case LeftAtrium:
		expansion := 0.12 * systoleFactor
		rx := int(float64(m.fx(0.12)) * (1 + expansion))
		ry := int(float64(m.fy(0.12)) * (1 + expansion))
		wall := m.fx(0.015)
		ct := ChamberContour{
			CenterX:          m.cx - m.fx(0.10),
			CenterY:          m.fy(0.65),
			OuterRX:          rx + wall,
			OuterRY:          ry + wall,
			InnerRX:          rx,
			InnerRY:          ry,
			WallBrightness:   120.0 / 255,
			CavityBrightness: 20.0 / 255,
		}
		ct.OuterTopY = ct.CenterY - ct.OuterRY
		ct.InnerTopY = ct.CenterY - ct.InnerRY
		return clampContour(ct)
	default: // RightAtrium
		expansion := 0.10 * systoleFactor
		rx := int(float64(m.fx(0.10)) * (1 + expansion))
		ry := int(float64(m.fy(0.11)) * (1 + expansion))
		wall := m.fx(0.012)
		ct := ChamberContour{
			CenterX:          m.cx + m.fx(0.12),
			CenterY:          m.fy(0.63),
			OuterRX:          rx + wall,
			OuterRY:          ry + wall,
			InnerRX:          rx,
			InnerRY:          ry,
			WallBrightness:   110.0 / 255,
			CavityBrightness: 22.0 / 255,
		}
		ct.OuterTopY = ct.CenterY - ct.OuterRY
		ct.InnerTopY = ct.CenterY - ct.InnerRY
		return clampContour(ct)
	}
}

// Valve returns the valve position and opening for the given contraction
// state. Both valves open during diastole (low systoleFactor) and close as
// the ventricles contract.
func (m *Model) Valve(v Valve, systoleFactor float64) ValveState {
	diastole := 1 - systoleFactor
	switch v {
	case MitralValve:
		return ValveState{
			X:             m.cx - m.fx(0.08),
			Y:             m.midY,
			Opening:       int(float64(m.fy(0.0625)) * diastole),
			LeafletLength: m.fy(0.073),
		}
	default: // TricuspidValve
		return ValveState{
			X:             m.cx + m.fx(0.10),
			Y:             m.midY - m.fy(0.0104),
			Opening:       int(float64(m.fy(0.052)) * diastole),
			LeafletLength: m.fy(0.0625),
		}
	}
}

// clampContour enforces OuterR* >= InnerR* >= 0. Degenerate phases never
// produce negative or inverted radii; the 1 px floor is applied later at
// rasterization.
func clampContour(ct ChamberContour) ChamberContour {
	if ct.OuterRX < 0 {
		ct.OuterRX = 0
	}
	if ct.OuterRY < 0 {
		ct.OuterRY = 0
	}
	if ct.InnerRX < 0 {
		ct.InnerRX = 0
	}
	if ct.InnerRY < 0 {
		ct.InnerRY = 0
	}
	if ct.InnerRX > ct.OuterRX {
		ct.InnerRX = ct.OuterRX
	}
	if ct.InnerRY > ct.OuterRY {
		ct.InnerRY = ct.OuterRY
	}
	return ct
}

// StructureOps returns the ordered draw commands for one frame of anatomy.
// Chambers are drawn first, then their septa (the ventricular septum only
// after both ventricles, the atrial septum only after both atria), then the
// valve leaflets on top.
func (m *Model) StructureOps(systoleFactor float64) []DrawOp {
	var ops []DrawOp

	lv := m.Contour(LeftVentricle, systoleFactor)
	rv := m.Contour(RightVentricle, systoleFactor)
	la := m.Contour(LeftAtrium, systoleFactor)
	ra := m.Contour(RightAtrium, systoleFactor)

	ops = append(ops, contourOps(lv)...)
	ops = append(ops, contourOps(rv)...)

	// Ventricular septum, brighter than the free walls.
	septumX := m.cx - m.fx(0.02)
	ops = append(ops, LineOp(
		septumX, lv.OuterTopY+m.fy(0.031),
		septumX, m.midY-m.fy(0.021),
		m.fx(0.031), 165.0/255))

	ops = append(ops, contourOps(la)...)
	ops = append(ops, contourOps(ra)...)

	// Atrial septum.
	ops = append(ops, LineOp(
		m.cx, m.midY+m.fy(0.031),
		m.cx, m.fy(0.75),
		m.fx(0.019), 140.0/255))

	// Mitral valve: anterior and posterior leaflets.
	mv := m.Valve(MitralValve, systoleFactor)
	tip := mv.Y + mv.Opening + mv.LeafletLength
	ops = append(ops, PolygonOp([]Point{
		{mv.X - m.fx(0.039), mv.Y - m.fy(0.0104)},
		{mv.X, tip - m.fy(0.021)},
		{mv.X + m.fx(0.0156), mv.Y - m.fy(0.0104)},
	}, 210.0/255))
	ops = append(ops, PolygonOp([]Point{
		{mv.X - m.fx(0.047), mv.Y},
		{mv.X - m.fx(0.0156), tip - m.fy(0.042)},
		{mv.X - m.fx(0.0547), mv.Y + m.fy(0.021)},
	}, 195.0/255))

	// Tricuspid valve, single leaflet wedge.
	tv := m.Valve(TricuspidValve, systoleFactor)
	ops = append(ops, PolygonOp([]Point{
		{tv.X - m.fx(0.031), tv.Y - m.fy(0.006)},
		{tv.X, tv.Y + tv.Opening + tv.LeafletLength - m.fy(0.031)},
		{tv.X + m.fx(0.023), tv.Y - m.fy(0.006)},
	}, 190.0/255))

	return ops
}

// contourOps expands one chamber into its two fill commands, outer wall
// first so the cavity punches through it.
func contourOps(ct ChamberContour) []DrawOp {
	return []DrawOp{
		EllipseOp(ct.CenterX-ct.OuterRX, ct.OuterTopY, ct.CenterX+ct.OuterRX, ct.CenterY+ct.OuterRY, ct.WallBrightness),
		EllipseOp(ct.CenterX-ct.InnerRX, ct.InnerTopY, ct.CenterX+ct.InnerRX, ct.CenterY+ct.InnerRY, ct.CavityBrightness),
	}
}
