package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/echoforge/cmd/echoforge/wizard"
	"github.com/mrsinham/echoforge/internal/dicom"
	"github.com/mrsinham/echoforge/internal/util"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		if err := wizard.Run(fromConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	numFrames := flag.Int("frames", 0, "Number of cine frames to generate (required)")
	width := flag.Int("width", 640, "Frame width in pixels")
	height := flag.Int("height", 480, "Frame height in pixels")
	quality := flag.Int("quality", 90, "JPEG quality (1-100)")
	frameRate := flag.Int("frame-rate", 0, "Cine frame rate in fps (0 = per machine)")
	outputDir := flag.String("output", "echo_output", "Output directory")
	seed := flag.Int64("seed", 0, "Seed for reproducibility (optional, auto-generated if not specified)")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers (default: %d = CPU cores)", runtime.NumCPU()))
	sectorAngle := flag.Float64("sector-angle", 72, "Imaging sector angle in degrees")
	doppler := flag.Bool("doppler", true, "Include color Doppler flow overlay")
	scanUI := flag.Bool("scan-ui", true, "Burn scanner UI (parameters, color bar, scale) into the frames")
	uncompressed := flag.Bool("uncompressed", false, "Write Explicit VR Little Endian instead of JPEG baseline")

	// Custom tag options
	var tagFlags []string
	flag.Func("tag", "Set DICOM tag: 'TagName=Value' (repeatable)", func(s string) error {
		tagFlags = append(tagFlags, s)
		return nil
	})

	// Interactive wizard and config options
	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save configuration to YAML file (after generation)")

	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *interactive {
		if err := wizard.Run(""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *configFile != "" {
		cfg, err := wizard.LoadFromYAML(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		opts, err := wizard.ToGeneratorOptions(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("echoforge")
		fmt.Println("=========")
		fmt.Printf("Loading config from %s\n\n", *configFile)

		file, err := dicom.GenerateCineLoop(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating cine loop: %v\n", err)
			os.Exit(1)
		}
		printResult(file)
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("echoforge %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if *numFrames <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --frames must be > 0\n")
		printUsage()
		os.Exit(1)
	}
	if *quality < 1 || *quality > 100 {
		fmt.Fprintf(os.Stderr, "Error: --quality must be within 1-100\n")
		os.Exit(1)
	}
	if *sectorAngle <= 0 || *sectorAngle >= 180 {
		fmt.Fprintf(os.Stderr, "Error: --sector-angle must be in (0, 180)\n")
		os.Exit(1)
	}

	parsedTags, err := util.ParseTagFlags(tagFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(parsedTags) > 0 {
		fmt.Printf("Custom tags: %d specified\n", len(parsedTags))
	}

	opts := dicom.GeneratorOptions{
		NumFrames:    *numFrames,
		Width:        *width,
		Height:       *height,
		Quality:      *quality,
		FrameRate:    *frameRate,
		OutputDir:    *outputDir,
		Seed:         *seed,
		Workers:      *workers,
		SectorAngle:  *sectorAngle,
		ColorDoppler: *doppler,
		ScanUI:       *scanUI,
		Uncompressed: *uncompressed,
		CustomTags:   parsedTags,
	}

	fmt.Println("echoforge")
	fmt.Println("=========")
	fmt.Println()

	file, err := dicom.GenerateCineLoop(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating cine loop: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		cfg := wizard.FromGeneratorOptions(opts)
		if err := wizard.SaveToYAML(cfg, *saveConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
		} else {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}

	printResult(file)
}

func printResult(file *dicom.GeneratedFile) {
	fmt.Println("\n✓ Generation complete!")
	fmt.Printf("  File: %s (%s)\n", file.Path, humanize.Bytes(uint64(file.SizeBytes)))
	fmt.Printf("  Patient: %s (%s)\n", file.PatientName, file.PatientID)
	fmt.Printf("  Frames: %d\n", file.NumFrames)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  echoforge --frames <N> [options]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}

func printHelp() {
	fmt.Println("echoforge")
	fmt.Println("=========")
	fmt.Println()
	fmt.Println("Generate synthetic echocardiography cine loops as multi-frame DICOM files.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  echoforge --frames <N> [options]")
	fmt.Println()
	fmt.Println("Required arguments:")
	fmt.Println("  --frames <N>          Number of cine frames (e.g. 90 for 3s at 30fps)")
	fmt.Println()
	fmt.Println("Optional arguments:")
	fmt.Println("  --output <DIR>        Output directory (default: 'echo_output')")
	fmt.Println("  --width <N>           Frame width in pixels (default: 640)")
	fmt.Println("  --height <N>          Frame height in pixels (default: 480)")
	fmt.Println("  --quality <N>         JPEG quality 1-100 (default: 90)")
	fmt.Println("  --frame-rate <N>      Cine frame rate in fps (default: picked per machine)")
	fmt.Println("  --sector-angle <DEG>  Imaging sector angle (default: 72)")
	fmt.Println("  --seed <N>            Seed for reproducibility (auto-generated if not specified)")
	fmt.Printf("  --workers <N>         Number of parallel workers (default: %d = CPU cores)\n", runtime.NumCPU())
	fmt.Println("  --doppler=false       Disable the color Doppler overlay (grayscale output)")
	fmt.Println("  --scan-ui=false       Disable the burned-in scanner UI")
	fmt.Println("  --uncompressed        Write Explicit VR Little Endian with native pixels")
	fmt.Println()
	fmt.Println("Custom tags:")
	fmt.Println("  --tag <NAME=VALUE>    Set DICOM tag value (repeatable)")
	fmt.Println("                        Example: --tag \"InstitutionName=CHU Bordeaux\"")
	fmt.Println()
	fmt.Println("Config and wizard:")
	fmt.Println("  --interactive, -i     Launch interactive wizard")
	fmt.Println("  --config <FILE>       Load configuration from YAML file")
	fmt.Println("  --save-config <FILE>  Save configuration to YAML file after generation")
	fmt.Println("  echoforge wizard      Wizard subcommand (--from <FILE> to prefill)")
	fmt.Println()
	fmt.Println("  --help                Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  # 3-second color Doppler loop at 30 fps")
	fmt.Println("  echoforge --frames 90 --frame-rate 30")
	fmt.Println()
	fmt.Println("  # Grayscale loop without burned-in UI")
	fmt.Println("  echoforge --frames 60 --doppler=false --scan-ui=false")
	fmt.Println()
	fmt.Println("  # Uncompressed output for viewers without JPEG support")
	fmt.Println("  echoforge --frames 30 --uncompressed")
	fmt.Println()
	fmt.Println("  # Reproducible run")
	fmt.Println("  echoforge --frames 90 --seed 42")
	fmt.Println()
	fmt.Println("Output:")
	fmt.Println("  One Ultrasound Multi-frame DICOM file with:")
	fmt.Println("  - JPEG baseline encapsulated pixel data (or native with --uncompressed)")
	fmt.Println("  - Apical four-chamber anatomy with a beating cardiac cycle")
	fmt.Println("  - Cine timing tags (FrameTime, CineRate, HeartRate)")
	fmt.Println()
	fmt.Println("Reproducibility:")
	fmt.Println("  Using the same seed ensures identical bytes across runs.")
	fmt.Println("  Same output directory name also generates consistent identifiers.")
}
