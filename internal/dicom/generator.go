package dicom

import (
	"fmt"
	"hash/fnv"
	randv2 "math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/mrsinham/echoforge/internal/image"
	"github.com/mrsinham/echoforge/internal/util"
)

// GeneratorOptions contains all parameters needed to generate a cine loop.
type GeneratorOptions struct {
	NumFrames int
	Width     int // 0 = 640
	Height    int // 0 = 480
	Quality   int // JPEG quality, 0 = 90
	FrameRate int // fps, 0 = pick per machine
	OutputDir string
	Seed      int64
	Workers   int // Number of parallel workers (0 = auto-detect based on CPU cores)

	SectorAngle float64 // degrees, 0 = 72

	ColorDoppler bool
	ScanUI       bool
	// Uncompressed writes Explicit VR Little Endian with native pixel data
	// instead of JPEG baseline encapsulation.
	Uncompressed bool

	// Custom tag overrides
	CustomTags util.ParsedTags

	// Output control
	Quiet            bool                     // Suppress progress output (for TUI integration)
	ProgressCallback func(current, total int) // Optional callback for progress updates
}

// GeneratedFile describes the written cine loop.
type GeneratedFile struct {
	Path           string
	StudyUID       string
	SeriesUID      string
	SOPInstanceUID string
	PatientID      string
	PatientName    string
	NumFrames      int
	SizeBytes      int64
}

type frameTask struct {
	index int
}

type frameResult struct {
	index int
	data  []byte
	err   error
}

// GenerateCineLoop renders every frame of the cardiac cycle, compresses
// them, and writes one multi-frame DICOM file. Frame synthesis runs on a
// worker pool; results are ordered by frame index before encapsulation, so
// worker scheduling never changes the output bytes.
func GenerateCineLoop(opts GeneratorOptions) (*GeneratedFile, error) {
	if opts.NumFrames <= 0 {
		return nil, fmt.Errorf("number of frames must be > 0, got %d", opts.NumFrames)
	}
	if opts.Width == 0 {
		opts.Width = 640
	}
	if opts.Height == 0 {
		opts.Height = 480
	}
	if opts.Width < 0 || opts.Height < 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", opts.Width, opts.Height)
	}
	if opts.Quality == 0 {
		opts.Quality = 90
	}
	if opts.SectorAngle == 0 {
		opts.SectorAngle = 72
	}
	if opts.SectorAngle <= 0 || opts.SectorAngle >= 180 {
		return nil, fmt.Errorf("sector angle must be in (0, 180), got %g", opts.SectorAngle)
	}
	if opts.FrameRate < 0 {
		return nil, fmt.Errorf("frame rate must be >= 0, got %d", opts.FrameRate)
	}

	var compressor FrameCompressor
	if opts.Uncompressed {
		compressor = RawCompressor{}
	} else {
		c, err := NewJPEGCompressor(opts.Quality)
		if err != nil {
			return nil, err
		}
		compressor = c
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Set seed for reproducibility
	var seed int64
	if opts.Seed != 0 {
		seed = opts.Seed
		if !opts.Quiet {
			fmt.Printf("Using seed: %d\n", seed)
		}
	} else {
		// Generate deterministic seed from output directory name
		h := fnv.New64a()
		_, _ = h.Write([]byte(opts.OutputDir)) // hash.Write never returns an error
		seed = int64(h.Sum64())
		if !opts.Quiet {
			fmt.Printf("Auto-generated seed from '%s': %d\n", opts.OutputDir, seed)
			fmt.Println("  (same directory = same patient/study identifiers)")
		}
	}
	rng := randv2.New(randv2.NewPCG(uint64(seed), uint64(seed)))

	params := GenerateStudyParams(rng)
	if opts.FrameRate > 0 {
		params.CineRate = opts.FrameRate
		params.FrameTimeMS = 1000.0 / float64(opts.FrameRate)
	}
	identity := generateIdentity(rng, seed, opts.CustomTags)

	geom, err := image.ComputeSector(opts.Width, opts.Height, opts.SectorAngle, 0.03, 0.92)
	if err != nil {
		return nil, fmt.Errorf("compute sector geometry: %w", err)
	}
	compositor := &image.Compositor{
		Geometry: geom,
		Model:    image.NewModel(opts.Width, opts.Height),
		Seed:     uint64(seed),
		Doppler:  opts.ColorDoppler,
	}

	if !opts.Quiet {
		mode := "JPEG baseline q" + is(opts.Quality)
		if opts.Uncompressed {
			mode = "uncompressed"
		}
		fmt.Printf("Rendering %d frames at %dx%d (%s)\n", opts.NumFrames, opts.Width, opts.Height, mode)
		fmt.Printf("  Machine: %s %s (%s), HR %d bpm, %d fps\n",
			params.Machine.Manufacturer, params.Machine.Model, params.Machine.Probe,
			params.HeartRate, params.CineRate)
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > opts.NumFrames {
		numWorkers = opts.NumFrames
	}

	taskChan := make(chan frameTask, opts.NumFrames)
	resultChan := make(chan frameResult, opts.NumFrames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskChan {
				data, err := renderFrame(compositor, compressor, params, opts, task.index)
				resultChan <- frameResult{index: task.index, data: data, err: err}
			}
		}()
	}

	for i := 0; i < opts.NumFrames; i++ {
		taskChan <- frameTask{index: i}
	}
	close(taskChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect in arrival order, store by frame index.
	codestreams := make([][]byte, opts.NumFrames)
	completed := 0
	var firstErr error
	for result := range resultChan {
		if result.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("render frame %d: %w", result.index, result.err)
		}
		codestreams[result.index] = result.data
		completed++
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(completed, opts.NumFrames)
		}
		if !opts.Quiet && (completed%15 == 0 || completed == opts.NumFrames) {
			progress := float64(completed) / float64(opts.NumFrames) * 100
			fmt.Printf("  Progress: %d/%d (%.0f%%)\n", completed, opts.NumFrames, progress)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	channels := 1
	if opts.ColorDoppler {
		channels = 3
	}
	set, err := AssembleDataset(AssembleOptions{
		Identity:          identity,
		Params:            params,
		Rows:              opts.Height,
		Columns:           opts.Width,
		Channels:          channels,
		NumFrames:         opts.NumFrames,
		TransferSyntaxUID: compressor.TransferSyntaxUID(),
		Codestreams:       codestreams,
		Tags:              opts.CustomTags,
	})
	if err != nil {
		return nil, err
	}

	suffix := ""
	if opts.ColorDoppler {
		suffix = "_color"
	}
	path := filepath.Join(opts.OutputDir, fmt.Sprintf("echo_%dframes%s.dcm", opts.NumFrames, suffix))
	if err := writeDatasetToFile(path, set); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &GeneratedFile{
		Path:           path,
		StudyUID:       identity.StudyUID,
		SeriesUID:      identity.SeriesUID,
		SOPInstanceUID: identity.SOPInstanceUID,
		PatientID:      identity.PatientID,
		PatientName:    identity.PatientName,
		NumFrames:      opts.NumFrames,
		SizeBytes:      info.Size(),
	}, nil
}

// renderFrame is the per-worker unit: frame synthesis, optional UI burn-in,
// compression. Pure function of the task index and shared read-only state.
func renderFrame(compositor *image.Compositor, compressor FrameCompressor, params StudyParams, opts GeneratorOptions, index int) ([]byte, error) {
	raster := compositor.ComposeFrame(index, opts.NumFrames)
	if opts.ScanUI {
		if err := image.BurnScanUI(raster, params.HeartRate, params.DepthCM, opts.SectorAngle, params.MechIndex, params.ThermalIndex); err != nil {
			return nil, fmt.Errorf("burn scan UI: %w", err)
		}
	}
	data, err := compressor.Compress(raster.Pix, raster.Width, raster.Height, raster.Channels)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return data, nil
}

// generateIdentity derives the patient and study level values from the run
// seed. Dates come from a fixed anchor plus an rng offset rather than the
// wall clock, so two runs with the same seed write identical files.
func generateIdentity(rng *randv2.Rand, seed int64, customTags util.ParsedTags) StudyIdentity {
	sex := "F"
	if rng.IntN(2) == 0 {
		sex = "M"
	}
	age := 20 + rng.IntN(60)

	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	studyTime := anchor.AddDate(0, 0, rng.IntN(365)).
		Add(time.Duration(7+rng.IntN(11)) * time.Hour).
		Add(time.Duration(rng.IntN(60)) * time.Minute).
		Add(time.Duration(rng.IntN(60)) * time.Second)
	birth := studyTime.AddDate(-age, 0, -rng.IntN(364))

	id := StudyIdentity{
		PatientName:     util.GeneratePatientName(sex, rng),
		PatientID:       fmt.Sprintf("ECH%07d", rng.IntN(10000000)),
		PatientBirth:    birth.Format("20060102"),
		PatientSex:      sex,
		PatientAge:      fmt.Sprintf("%03dY", age),
		AccessionNumber: util.GenerateAccessionNumber(rng),
		Physician:       util.GeneratePhysicianName(rng),
		Institution:     util.GenerateInstitution(rng),
		StudyUID:        util.GenerateDeterministicUID(fmt.Sprintf("echoforge_%d_study", seed)),
		SeriesUID:       util.GenerateDeterministicUID(fmt.Sprintf("echoforge_%d_series", seed)),
		SOPInstanceUID:  util.GenerateDeterministicUID(fmt.Sprintf("echoforge_%d_instance", seed)),
		ImplClassUID:    util.GenerateDeterministicUID("echoforge_implementation"),
		StudyDate:       studyTime.Format("20060102"),
		StudyTime:       studyTime.Format("150405"),
		StudyID:         fmt.Sprintf("ECHO%04d", rng.IntN(9000)+1000),
	}

	id.PatientName = customTags.Value("PatientName", id.PatientName)
	id.PatientID = customTags.Value("PatientID", id.PatientID)
	id.PatientBirth = customTags.Value("PatientBirthDate", id.PatientBirth)
	id.PatientSex = customTags.Value("PatientSex", id.PatientSex)
	id.PatientAge = customTags.Value("PatientAge", id.PatientAge)
	id.AccessionNumber = customTags.Value("AccessionNumber", id.AccessionNumber)
	id.Physician = customTags.Value("ReferringPhysicianName", id.Physician)
	id.Institution = customTags.Value("InstitutionName", id.Institution)
	return id
}
