package wizard

import (
	"fmt"

	"github.com/mrsinham/echoforge/internal/dicom"
	"github.com/mrsinham/echoforge/internal/util"
)

// ToGeneratorOptions converts a config to generator options, validating the
// fields the generator cannot default.
func ToGeneratorOptions(cfg *Config) (dicom.GeneratorOptions, error) {
	if cfg.Loop.Frames <= 0 {
		return dicom.GeneratorOptions{}, fmt.Errorf("loop.frames must be > 0, got %d", cfg.Loop.Frames)
	}
	if cfg.Output.Quality < 1 || cfg.Output.Quality > 100 {
		return dicom.GeneratorOptions{}, fmt.Errorf("output.quality must be within 1-100, got %d", cfg.Output.Quality)
	}

	var tags util.ParsedTags
	if len(cfg.Tags) > 0 {
		flags := make([]string, 0, len(cfg.Tags))
		for name, value := range cfg.Tags {
			flags = append(flags, name+"="+value)
		}
		parsed, err := util.ParseTagFlags(flags)
		if err != nil {
			return dicom.GeneratorOptions{}, err
		}
		tags = parsed
	}

	return dicom.GeneratorOptions{
		NumFrames:    cfg.Loop.Frames,
		Width:        cfg.Loop.Width,
		Height:       cfg.Loop.Height,
		Quality:      cfg.Output.Quality,
		FrameRate:    cfg.Loop.FrameRate,
		OutputDir:    cfg.Output.Dir,
		Seed:         cfg.Output.Seed,
		Workers:      cfg.Output.Workers,
		SectorAngle:  cfg.Loop.SectorAngle,
		ColorDoppler: cfg.Loop.ColorDoppler,
		ScanUI:       cfg.Loop.ScanUI,
		Uncompressed: cfg.Output.Uncompressed,
		CustomTags:   tags,
	}, nil
}

// FromGeneratorOptions converts generator options back to the config schema
// for --save-config.
func FromGeneratorOptions(opts dicom.GeneratorOptions) *Config {
	cfg := DefaultConfig()
	cfg.Loop.Frames = opts.NumFrames
	cfg.Loop.Width = opts.Width
	cfg.Loop.Height = opts.Height
	cfg.Loop.FrameRate = opts.FrameRate
	cfg.Loop.SectorAngle = opts.SectorAngle
	cfg.Loop.ColorDoppler = opts.ColorDoppler
	cfg.Loop.ScanUI = opts.ScanUI
	cfg.Output.Dir = opts.OutputDir
	cfg.Output.Quality = opts.Quality
	cfg.Output.Uncompressed = opts.Uncompressed
	cfg.Output.Seed = opts.Seed
	cfg.Output.Workers = opts.Workers
	if len(opts.CustomTags) > 0 {
		cfg.Tags = make(map[string]string, len(opts.CustomTags))
		for name, value := range opts.CustomTags {
			cfg.Tags[name] = value
		}
	}
	return cfg
}
