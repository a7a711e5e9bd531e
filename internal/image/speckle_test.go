package image

import (
	"math"
	"testing"
)

func TestGenerateSpeckleDeterministic(t *testing.T) {
	a := GenerateSpeckle(96, 64, 1234)
	b := GenerateSpeckle(96, 64, 1234)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("speckle differs at index %d with identical seed: %v != %v", i, a[i], b[i])
		}
	}
}

func TestGenerateSpeckleSeedSensitivity(t *testing.T) {
	a := GenerateSpeckle(96, 64, 1)
	b := GenerateSpeckle(96, 64, 2)
	same := 0
	for i := range a {
		if a[i] == b[i] {
			same++
		}
	}
	if same == len(a) {
		t.Fatal("different seeds produced identical fields")
	}
}

func TestGenerateSpeckleRange(t *testing.T) {
	field := GenerateSpeckle(96, 64, 99)
	if len(field) != 96*64 {
		t.Fatalf("field has %d entries, want %d", len(field), 96*64)
	}
	min, max := math.Inf(1), math.Inf(-1)
	for i, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value at %d: %v", i, v)
		}
		if v < 0 || v > 1 {
			t.Fatalf("value out of [0,1] at %d: %v", i, v)
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	// Min-max normalization pins the extremes.
	if min > 1e-9 {
		t.Errorf("minimum = %v, want 0", min)
	}
	if max < 1-1e-9 {
		t.Errorf("maximum = %v, want 1", max)
	}
}

func TestGenerateSpeckleDepthGradient(t *testing.T) {
	// The depth ramp brightens deep rows on average.
	field := GenerateSpeckle(128, 128, 7)
	var top, bottom float64
	for x := 0; x < 128; x++ {
		for y := 0; y < 16; y++ {
			top += field[y*128+x]
		}
		for y := 112; y < 128; y++ {
			bottom += field[y*128+x]
		}
	}
	if bottom <= top {
		t.Errorf("bottom rows (%v) not brighter than top rows (%v)", bottom, top)
	}
}
