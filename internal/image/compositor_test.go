package image

import (
	"bytes"
	"testing"
)

func newTestCompositor(t *testing.T, width, height int, doppler bool) *Compositor {
	t.Helper()
	geo, err := ComputeSector(width, height, 75, 0.03, 0.92)
	if err != nil {
		t.Fatalf("compute sector: %v", err)
	}
	return &Compositor{
		Geometry: geo,
		Model:    NewModel(width, height),
		Seed:     42,
		Doppler:  doppler,
	}
}

func TestComposeFrameGrayscale(t *testing.T) {
	c := newTestCompositor(t, 160, 120, false)
	r := c.ComposeFrame(0, 24)

	if r.Width != 160 || r.Height != 120 || r.Channels != 1 {
		t.Fatalf("raster %dx%dx%d, want 160x120x1", r.Width, r.Height, r.Channels)
	}
	if len(r.Pix) != 160*120 {
		t.Fatalf("pix length %d, want %d", len(r.Pix), 160*120)
	}

	// The sector mask zeroes the top corners.
	if r.Pix[0] != 0 || r.Pix[159] != 0 {
		t.Error("pixels outside the sector are not black")
	}
	// The anatomy lights up pixels inside the sector.
	lit := 0
	for _, v := range r.Pix {
		if v > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("frame is entirely black")
	}
}

func TestComposeFrameColor(t *testing.T) {
	c := newTestCompositor(t, 160, 120, true)
	r := c.ComposeFrame(18, 24) // three-quarter cycle, full diastole

	if r.Channels != 3 {
		t.Fatalf("channels = %d, want 3", r.Channels)
	}
	if len(r.Pix) != 160*120*3 {
		t.Fatalf("pix length %d, want %d", len(r.Pix), 160*120*3)
	}

	// During full diastole some pixels must diverge from gray.
	colored := 0
	for i := 0; i < len(r.Pix); i += 3 {
		if r.Pix[i] != r.Pix[i+1] || r.Pix[i+1] != r.Pix[i+2] {
			colored++
		}
	}
	if colored == 0 {
		t.Error("no colored pixels during peak inflow")
	}
}

func TestComposeFrameDeterministic(t *testing.T) {
	a := newTestCompositor(t, 128, 96, true).ComposeFrame(5, 24)
	b := newTestCompositor(t, 128, 96, true).ComposeFrame(5, 24)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same seed and frame produced different bytes")
	}
}

func TestComposeFrameSeedSensitivity(t *testing.T) {
	c1 := newTestCompositor(t, 128, 96, false)
	c2 := newTestCompositor(t, 128, 96, false)
	c2.Seed = 43
	a := c1.ComposeFrame(0, 24)
	b := c2.ComposeFrame(0, 24)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("different seeds produced identical frames")
	}
}

func TestComposeFrameMotion(t *testing.T) {
	c := newTestCompositor(t, 128, 96, false)
	a := c.ComposeFrame(0, 24)
	b := c.ComposeFrame(6, 24) // peak systole
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("contraction produced no pixel change")
	}
}
