package image

import (
	"bytes"
	"strings"
	"testing"
)

func TestBurnScanUIValidation(t *testing.T) {
	cases := []struct {
		name   string
		raster *Raster
		errSub string
	}{
		{
			name:   "zero width",
			raster: &Raster{Width: 0, Height: 100, Channels: 1},
			errSub: "invalid dimensions",
		},
		{
			name:   "bad channel count",
			raster: &Raster{Width: 100, Height: 100, Channels: 2, Pix: make([]uint8, 100*100*2)},
			errSub: "unsupported channel count",
		},
		{
			name:   "short pixel slice",
			raster: &Raster{Width: 100, Height: 100, Channels: 1, Pix: make([]uint8, 10)},
			errSub: "does not match",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := BurnScanUI(tc.raster, 70, 16, 75, 1.1, 0.9)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("error %q does not contain %q", err, tc.errSub)
			}
		})
	}
}

func TestBurnScanUIGrayscale(t *testing.T) {
	r := &Raster{Width: 320, Height: 240, Channels: 1, Pix: make([]uint8, 320*240)}
	before := make([]uint8, len(r.Pix))
	copy(before, r.Pix)

	if err := BurnScanUI(r, 72, 16, 75, 1.1, 0.9); err != nil {
		t.Fatalf("burn overlay: %v", err)
	}
	if bytes.Equal(before, r.Pix) {
		t.Fatal("overlay changed no pixels")
	}
	// The sector border is pure white on a black frame.
	white := 0
	for _, v := range r.Pix {
		if v == 255 {
			white++
		}
	}
	if white == 0 {
		t.Error("no white border pixels")
	}
}

func TestBurnScanUIColorBar(t *testing.T) {
	gray := &Raster{Width: 320, Height: 240, Channels: 1, Pix: make([]uint8, 320*240)}
	colored := &Raster{Width: 320, Height: 240, Channels: 3, Pix: make([]uint8, 320*240*3)}
	if err := BurnScanUI(gray, 72, 16, 75, 1.1, 0.9); err != nil {
		t.Fatalf("grayscale overlay: %v", err)
	}
	if err := BurnScanUI(colored, 72, 16, 75, 1.1, 0.9); err != nil {
		t.Fatalf("color overlay: %v", err)
	}

	// The velocity bar top is saturated red, present only on color frames.
	redTop := func(pix []uint8) bool {
		x, y := 320-40+5, 31
		i := (y*320 + x) * 3
		return pix[i] > 200 && pix[i+1] == 0 && pix[i+2] == 0
	}
	if !redTop(colored.Pix) {
		t.Error("color frame missing the velocity bar")
	}
	// Grayscale frames average the bar away entirely; spot-check the cell.
	i := 31*320 + (320 - 40 + 5)
	if gray.Pix[i] == 255 {
		t.Error("grayscale frame carries a saturated bar pixel")
	}
}

func TestBurnScanUIAcousticIndices(t *testing.T) {
	// The MI/TIS readout reflects the study parameters, so frames with
	// different indices must differ in the top-right text block.
	render := func(mech, thermal float64) []uint8 {
		r := &Raster{Width: 320, Height: 240, Channels: 1, Pix: make([]uint8, 320*240)}
		if err := BurnScanUI(r, 72, 16, 75, mech, thermal); err != nil {
			t.Fatalf("burn overlay: %v", err)
		}
		return r.Pix
	}
	a := render(1.2, 2.0)
	b := render(0.8, 0.6)
	diff := 0
	for y := 0; y < 40; y++ {
		for x := 320 - 90; x < 320; x++ {
			if a[y*320+x] != b[y*320+x] {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Fatal("acoustic index text did not change with the parameters")
	}
}

func TestBurnScanUIPreservesInterior(t *testing.T) {
	r := &Raster{Width: 320, Height: 240, Channels: 1, Pix: make([]uint8, 320*240)}
	for i := range r.Pix {
		r.Pix[i] = 40
	}
	if err := BurnScanUI(r, 72, 16, 75, 1.1, 0.9); err != nil {
		t.Fatalf("burn overlay: %v", err)
	}
	// A mid-sector pixel away from all furniture keeps its value.
	if v := r.Pix[120*320+160]; v != 40 {
		t.Errorf("interior pixel = %d, want 40", v)
	}
}
