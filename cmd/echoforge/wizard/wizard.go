package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/echoforge/internal/dicom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)

	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Run drives the interactive configuration flow and then generates the cine
// loop. fromConfig optionally prefills the form from a YAML file.
func Run(fromConfig string) error {
	cfg := DefaultConfig()
	if fromConfig != "" {
		loaded, err := LoadFromYAML(fromConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	fmt.Println(titleStyle.Render("echoforge wizard"))

	frames := strconv.Itoa(cfg.Loop.Frames)
	width := strconv.Itoa(cfg.Loop.Width)
	height := strconv.Itoa(cfg.Loop.Height)
	frameRate := strconv.Itoa(cfg.Loop.FrameRate)
	quality := strconv.Itoa(cfg.Output.Quality)
	seed := strconv.FormatInt(cfg.Output.Seed, 10)
	outputDir := cfg.Output.Dir
	doppler := cfg.Loop.ColorDoppler
	scanUI := cfg.Loop.ScanUI
	uncompressed := cfg.Output.Uncompressed

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Number of frames").
				Description("Cine loop length, e.g. 90 for 3 seconds at 30 fps").
				Value(&frames).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Frame rate (fps)").
				Description("0 lets the simulated machine pick").
				Value(&frameRate).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Frame width").
				Value(&width).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Frame height").
				Value(&height).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Color Doppler overlay?").
				Value(&doppler),
			huh.NewConfirm().
				Title("Burn scanner UI into frames?").
				Value(&scanUI),
			huh.NewConfirm().
				Title("Uncompressed output (Explicit VR LE)?").
				Description("Default is JPEG baseline encapsulation").
				Value(&uncompressed),
			huh.NewInput().
				Title("JPEG quality").
				Description("1-100, ignored for uncompressed output").
				Value(&quality).
				Validate(validateQuality),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Value(&outputDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output directory is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Seed").
				Description("0 derives a seed from the output directory").
				Value(&seed).
				Validate(func(s string) error {
					_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil {
						return fmt.Errorf("must be an integer")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("wizard cancelled: %w", err)
	}

	cfg.Loop.Frames, _ = strconv.Atoi(frames)
	cfg.Loop.Width, _ = strconv.Atoi(width)
	cfg.Loop.Height, _ = strconv.Atoi(height)
	cfg.Loop.FrameRate, _ = strconv.Atoi(frameRate)
	cfg.Loop.ColorDoppler = doppler
	cfg.Loop.ScanUI = scanUI
	cfg.Output.Quality, _ = strconv.Atoi(quality)
	cfg.Output.Seed, _ = strconv.ParseInt(seed, 10, 64)
	cfg.Output.Dir = outputDir
	cfg.Output.Uncompressed = uncompressed

	fmt.Println(summaryStyle.Render(summarize(cfg)))

	confirmed := true
	if err := huh.NewConfirm().
		Title("Generate now?").
		Value(&confirmed).
		Run(); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	opts, err := ToGeneratorOptions(cfg)
	if err != nil {
		return err
	}
	opts.Quiet = true
	opts.ProgressCallback = func(current, total int) {
		fmt.Printf("\r  Rendering frames: %d/%d", current, total)
		if current == total {
			fmt.Println()
		}
	}

	file, err := dicom.GenerateCineLoop(opts)
	if err != nil {
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("✓ Wrote %s (%s)", file.Path, humanize.Bytes(uint64(file.SizeBytes)))))

	savePath := ""
	if err := huh.NewInput().
		Title("Save this configuration? (path, empty to skip)").
		Value(&savePath).
		Run(); err != nil {
		return err
	}
	if strings.TrimSpace(savePath) != "" {
		if err := SaveToYAML(cfg, savePath); err != nil {
			return err
		}
		fmt.Printf("Configuration saved to %s\n", savePath)
	}
	return nil
}

func summarize(cfg *Config) string {
	mode := fmt.Sprintf("JPEG baseline q%d", cfg.Output.Quality)
	if cfg.Output.Uncompressed {
		mode = "Explicit VR Little Endian"
	}
	return strings.Join([]string{
		fmt.Sprintf("Frames:   %d at %dx%d", cfg.Loop.Frames, cfg.Loop.Width, cfg.Loop.Height),
		fmt.Sprintf("Doppler:  %v, scan UI: %v", cfg.Loop.ColorDoppler, cfg.Loop.ScanUI),
		fmt.Sprintf("Encoding: %s", mode),
		fmt.Sprintf("Output:   %s (seed %d)", cfg.Output.Dir, cfg.Output.Seed),
	}, "\n")
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be zero or a positive integer")
	}
	return nil
}

func validateQuality(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 100 {
		return fmt.Errorf("must be within 1-100")
	}
	return nil
}
