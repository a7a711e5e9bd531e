package dicom

import (
	"fmt"
	"sort"

	"github.com/mrsinham/echoforge/internal/util"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
)

const (
	// Ultrasound Multi-frame Image Storage.
	usMultiFrameSOPClassUID = "1.2.840.10008.5.1.4.1.1.3.1"

	implementationVersion = "ECHOFORGE_1.0"
)

// StudyIdentity carries the patient and study level values shared by every
// file of one run.
type StudyIdentity struct {
	PatientName     string
	PatientID       string
	PatientBirth    string
	PatientSex      string
	PatientAge      string
	AccessionNumber string
	Physician       string
	Institution     string
	StudyUID        string
	SeriesUID       string
	SOPInstanceUID  string
	ImplClassUID    string
	StudyDate       string
	StudyTime       string
	StudyID         string
}

// AssembleOptions describes one multi-frame instance to build.
type AssembleOptions struct {
	Identity StudyIdentity
	Params   StudyParams

	Rows    int
	Columns int
	// Channels is 1 for MONOCHROME2 output, 3 for color.
	Channels  int
	NumFrames int

	// TransferSyntaxUID selects native vs encapsulated layout.
	TransferSyntaxUID string

	// Codestreams holds one compressed frame per cine frame when the
	// transfer syntax is encapsulated, raw interleaved pixels otherwise.
	Codestreams [][]byte

	// Tags overrides descriptive values by canonical tag name.
	Tags util.ParsedTags
}

// AssembleDataset builds the complete multi-frame dataset. For encapsulated
// syntaxes the pixel stream is built with Encapsulate and then re-parsed as
// a self-check: fragment count and offsets must round-trip before the
// stream is committed to the dataset.
func AssembleDataset(opts AssembleOptions) (dicom.Dataset, error) {
	if opts.NumFrames <= 0 {
		return dicom.Dataset{}, fmt.Errorf("invalid frame count %d", opts.NumFrames)
	}
	if len(opts.Codestreams) != opts.NumFrames {
		return dicom.Dataset{}, fmt.Errorf("have %d codestreams for %d frames", len(opts.Codestreams), opts.NumFrames)
	}
	if opts.Channels != 1 && opts.Channels != 3 {
		return dicom.Dataset{}, fmt.Errorf("unsupported channel count %d", opts.Channels)
	}

	encapsulated := opts.TransferSyntaxUID == "1.2.840.10008.1.2.4.50"
	var pixelInfo dicom.PixelDataInfo
	if encapsulated {
		stream, err := Encapsulate(opts.Codestreams)
		if err != nil {
			return dicom.Dataset{}, fmt.Errorf("encapsulate pixel data: %w", err)
		}
		parsed, offsets, err := Decapsulate(stream.Bytes)
		if err != nil {
			return dicom.Dataset{}, fmt.Errorf("encapsulated stream failed self-check: %w", err)
		}
		if len(parsed) != opts.NumFrames {
			return dicom.Dataset{}, fmt.Errorf("stream self-check found %d fragments, want %d", len(parsed), opts.NumFrames)
		}
		for i := range offsets {
			if offsets[i] != stream.Offsets[i] {
				return dicom.Dataset{}, fmt.Errorf("offset table mismatch at frame %d: %d != %d", i, offsets[i], stream.Offsets[i])
			}
		}

		frames := make([]*frame.Frame, opts.NumFrames)
		for i, data := range stream.Frames {
			frames[i] = &frame.Frame{
				Encapsulated:     true,
				EncapsulatedData: frame.EncapsulatedFrame{Data: data},
			}
		}
		pixelInfo = dicom.PixelDataInfo{
			IsEncapsulated: true,
			Frames:         frames,
			Offsets:        stream.Offsets,
		}
	} else {
		pixelsPerFrame := opts.Rows * opts.Columns
		frames := make([]*frame.Frame, opts.NumFrames)
		for i, raw := range opts.Codestreams {
			if len(raw) != pixelsPerFrame*opts.Channels {
				return dicom.Dataset{}, fmt.Errorf("frame %d holds %d bytes, want %d", i, len(raw), pixelsPerFrame*opts.Channels)
			}
			native := frame.NewNativeFrame[uint8](8, opts.Rows, opts.Columns, pixelsPerFrame, opts.Channels)
			for j, b := range raw {
				native.RawData[j] = b
			}
			frames[i] = &frame.Frame{NativeData: native}
		}
		pixelInfo = dicom.PixelDataInfo{IsEncapsulated: false, Frames: frames}
	}

	id := opts.Identity
	p := opts.Params

	photometric := "MONOCHROME2"
	samplesPerPixel := 1
	if opts.Channels == 3 {
		samplesPerPixel = 3
		if encapsulated {
			photometric = "YBR_FULL_422"
		} else {
			photometric = "RGB"
		}
	}
	seriesDescription := "Apical 4-Chamber"
	if opts.Channels == 3 {
		seriesDescription = "Apical 4-Chamber with Color Doppler"
	}
	seriesDescription = opts.Tags.Value("SeriesDescription", seriesDescription)
	studyDescription := opts.Tags.Value("StudyDescription", "TTE - Transthoracic Echocardiogram")
	manufacturer := opts.Tags.Value("Manufacturer", p.Machine.Manufacturer)
	model := opts.Tags.Value("ManufacturerModelName", p.Machine.Model)
	probe := opts.Tags.Value("TransducerData", p.Machine.Probe)
	bodyPart := opts.Tags.Value("BodyPartExamined", "HEART")
	windowCenter := opts.Tags.Value("WindowCenter", "128.0")
	windowWidth := opts.Tags.Value("WindowWidth", "256.0")

	frameTimes := make([]string, opts.NumFrames)
	for i := range frameTimes {
		frameTimes[i] = ds(p.FrameTimeMS)
	}

	pixelData := mustNewElement(tag.PixelData, pixelInfo)
	if encapsulated {
		// The writer dispatches on the value length: undefined length selects
		// the fragment-stream layout, anything else the native one.
		pixelData.ValueLength = tag.VLUndefinedLength
	}

	elements := []*dicom.Element{
		mustNewElement(tag.MediaStorageSOPClassUID, []string{usMultiFrameSOPClassUID}),
		mustNewElement(tag.MediaStorageSOPInstanceUID, []string{id.SOPInstanceUID}),
		mustNewElement(tag.TransferSyntaxUID, []string{opts.TransferSyntaxUID}),
		mustNewElement(tag.ImplementationClassUID, []string{id.ImplClassUID}),
		mustNewElement(tag.ImplementationVersionName, []string{implementationVersion}),
		mustNewElement(tag.SpecificCharacterSet, []string{"ISO_IR 192"}),

		mustNewElement(tag.PatientName, []string{id.PatientName}),
		mustNewElement(tag.PatientID, []string{id.PatientID}),
		mustNewElement(tag.PatientBirthDate, []string{id.PatientBirth}),
		mustNewElement(tag.PatientSex, []string{id.PatientSex}),
		mustNewElement(tag.PatientAge, []string{id.PatientAge}),

		mustNewElement(tag.StudyInstanceUID, []string{id.StudyUID}),
		mustNewElement(tag.StudyDate, []string{id.StudyDate}),
		mustNewElement(tag.StudyTime, []string{id.StudyTime}),
		mustNewElement(tag.StudyID, []string{id.StudyID}),
		mustNewElement(tag.AccessionNumber, []string{id.AccessionNumber}),
		mustNewElement(tag.ReferringPhysicianName, []string{id.Physician}),
		mustNewElement(tag.StudyDescription, []string{studyDescription}),

		mustNewElement(tag.SeriesInstanceUID, []string{id.SeriesUID}),
		mustNewElement(tag.SeriesNumber, []string{"1"}),
		mustNewElement(tag.SeriesDescription, []string{seriesDescription}),
		mustNewElement(tag.Modality, []string{"US"}),
		mustNewElement(tag.BodyPartExamined, []string{bodyPart}),

		mustNewElement(tag.Manufacturer, []string{manufacturer}),
		mustNewElement(tag.ManufacturerModelName, []string{model}),
		mustNewElement(tag.TransducerData, []string{probe}),
		mustNewElement(tag.InstitutionName, []string{id.Institution}),

		mustNewElement(tag.SOPClassUID, []string{usMultiFrameSOPClassUID}),
		mustNewElement(tag.SOPInstanceUID, []string{id.SOPInstanceUID}),
		mustNewElement(tag.InstanceNumber, []string{"1"}),
		mustNewElement(tag.ContentDate, []string{id.StudyDate}),
		mustNewElement(tag.ContentTime, []string{id.StudyTime}),
		mustNewElement(tag.ImageType, []string{"ORIGINAL", "PRIMARY", ""}),

		mustNewElement(tag.SamplesPerPixel, []int{samplesPerPixel}),
		mustNewElement(tag.PhotometricInterpretation, []string{photometric}),
		mustNewElement(tag.NumberOfFrames, []string{is(opts.NumFrames)}),
		mustNewElement(tag.Rows, []int{opts.Rows}),
		mustNewElement(tag.Columns, []int{opts.Columns}),
		mustNewElement(tag.BitsAllocated, []int{8}),
		mustNewElement(tag.BitsStored, []int{8}),
		mustNewElement(tag.HighBit, []int{7}),
		mustNewElement(tag.PixelRepresentation, []int{0}),

		mustNewElement(tag.FrameTime, []string{ds(p.FrameTimeMS)}),
		mustNewElement(tag.FrameTimeVector, frameTimes),
		mustNewElement(tag.RecommendedDisplayFrameRate, []string{is(p.CineRate)}),
		mustNewElement(tag.CineRate, []string{is(p.CineRate)}),
		mustNewElement(tag.HeartRate, []string{is(p.HeartRate)}),
		mustNewElement(tag.CardiacNumberOfImages, []string{is(opts.NumFrames)}),

		mustNewElement(tag.WindowCenter, []string{windowCenter}),
		mustNewElement(tag.WindowWidth, []string{windowWidth}),

		pixelData,
	}

	if opts.Channels == 3 {
		elements = append(elements, mustNewElement(tag.PlanarConfiguration, []int{0}))
	}
	if encapsulated {
		elements = append(elements,
			mustNewElement(tag.LossyImageCompression, []string{"01"}),
			mustNewElement(tag.LossyImageCompressionMethod, []string{"ISO_10918_1"}),
		)
	}

	sort.Slice(elements, func(i, j int) bool {
		a, b := elements[i].Tag, elements[j].Tag
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Element < b.Element
	})

	return dicom.Dataset{Elements: elements}, nil
}
