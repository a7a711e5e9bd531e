// Package wizard provides an interactive configuration flow for cine loop
// generation, plus the YAML config file schema shared with --config.
package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration schema.
type Config struct {
	Loop   LoopConfig        `yaml:"loop"`
	Output OutputConfig      `yaml:"output"`
	Tags   map[string]string `yaml:"tags,omitempty"`
}

// LoopConfig holds the acquisition settings for the cine loop.
type LoopConfig struct {
	Frames       int     `yaml:"frames"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FrameRate    int     `yaml:"frame_rate"`
	SectorAngle  float64 `yaml:"sector_angle"`
	ColorDoppler bool    `yaml:"color_doppler"`
	ScanUI       bool    `yaml:"scan_ui"`
}

// OutputConfig holds the container and destination settings.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Quality      int    `yaml:"quality"`
	Uncompressed bool   `yaml:"uncompressed"`
	Seed         int64  `yaml:"seed"`
	Workers      int    `yaml:"workers"`
}

// DefaultConfig returns the settings used when a field is left untouched.
func DefaultConfig() *Config {
	return &Config{
		Loop: LoopConfig{
			Frames:       90,
			Width:        640,
			Height:       480,
			SectorAngle:  72,
			ColorDoppler: true,
			ScanUI:       true,
		},
		Output: OutputConfig{
			Dir:     "echo_output",
			Quality: 90,
		},
	}
}

// LoadFromYAML reads a config file.
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToYAML writes the config to a file.
func SaveToYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
