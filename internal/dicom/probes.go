package dicom

import (
	randv2 "math/rand/v2"
)

// Machine describes an ultrasound system and the transducer used for the
// study.
type Machine struct {
	Manufacturer string
	Model        string
	Probe        string
	// Center transmit frequency in MHz.
	FrequencyMHz float64
}

// Machines returns the available echo cart configurations.
func Machines() []Machine {
	return []Machine{
		{Manufacturer: "PHILIPS", Model: "EPIQ CVx", Probe: "X5-1", FrequencyMHz: 3.2},
		{Manufacturer: "PHILIPS", Model: "Affiniti 70", Probe: "S5-1", FrequencyMHz: 2.5},
		{Manufacturer: "GE HEALTHCARE", Model: "Vivid E95", Probe: "M5Sc-D", FrequencyMHz: 2.7},
		{Manufacturer: "GE HEALTHCARE", Model: "Vivid S70N", Probe: "4Vc-D", FrequencyMHz: 2.5},
		{Manufacturer: "SIEMENS", Model: "ACUSON SC2000", Probe: "4Z1c", FrequencyMHz: 2.8},
		{Manufacturer: "CANON", Model: "Aplio i900", Probe: "i8CX1", FrequencyMHz: 3.0},
	}
}

// StudyParams holds the acquisition settings shared by every frame of one
// cine loop.
type StudyParams struct {
	Machine      Machine
	HeartRate    int     // bpm
	DepthCM      float64 // imaging depth shown on screen
	SectorAngle  float64 // degrees
	FrameTimeMS  float64 // milliseconds per frame
	CineRate     int     // frames per second
	MechIndex    float64
	ThermalIndex float64
}

// GenerateStudyParams picks a machine and plausible acquisition settings
// from the rng, so the same seed always yields the same study.
func GenerateStudyParams(rng *randv2.Rand) StudyParams {
	machines := Machines()
	machine := machines[rng.IntN(len(machines))]
	cineRate := 25 + rng.IntN(36) // 25-60 fps
	return StudyParams{
		Machine:      machine,
		HeartRate:    55 + rng.IntN(46), // 55-100 bpm
		DepthCM:      14.0 + rng.Float64()*6.0,
		SectorAngle:  72,
		FrameTimeMS:  1000.0 / float64(cineRate),
		CineRate:     cineRate,
		MechIndex:    0.8 + rng.Float64()*0.6,
		ThermalIndex: 0.5 + rng.Float64()*1.0,
	}
}
