package dicom

import (
	"math"
	randv2 "math/rand/v2"
	"testing"
)

func TestGenerateStudyParamsDeterministic(t *testing.T) {
	a := GenerateStudyParams(randv2.New(randv2.NewPCG(9, 9)))
	b := GenerateStudyParams(randv2.New(randv2.NewPCG(9, 9)))
	if a != b {
		t.Fatalf("same seed produced different params:\n%+v\n%+v", a, b)
	}
}

func TestGenerateStudyParamsRanges(t *testing.T) {
	rng := randv2.New(randv2.NewPCG(1, 1))
	for i := 0; i < 200; i++ {
		p := GenerateStudyParams(rng)
		if p.HeartRate < 55 || p.HeartRate > 100 {
			t.Errorf("heart rate %d out of 55-100", p.HeartRate)
		}
		if p.DepthCM < 14 || p.DepthCM >= 20 {
			t.Errorf("depth %v out of [14,20)", p.DepthCM)
		}
		if p.CineRate < 25 || p.CineRate > 60 {
			t.Errorf("cine rate %d out of 25-60", p.CineRate)
		}
		if math.Abs(p.FrameTimeMS-1000.0/float64(p.CineRate)) > 1e-9 {
			t.Errorf("frame time %v does not match cine rate %d", p.FrameTimeMS, p.CineRate)
		}
		if p.SectorAngle != 72 {
			t.Errorf("sector angle %v, want 72", p.SectorAngle)
		}
		if p.Machine.Manufacturer == "" || p.Machine.Probe == "" {
			t.Errorf("incomplete machine: %+v", p.Machine)
		}
	}
}

func TestMachinesCatalog(t *testing.T) {
	machines := Machines()
	if len(machines) == 0 {
		t.Fatal("empty machine catalog")
	}
	seen := map[string]bool{}
	for _, m := range machines {
		key := m.Manufacturer + "/" + m.Model
		if seen[key] {
			t.Errorf("duplicate machine %s", key)
		}
		seen[key] = true
		if m.FrequencyMHz <= 0 {
			t.Errorf("%s: frequency %v", key, m.FrequencyMHz)
		}
	}
}
