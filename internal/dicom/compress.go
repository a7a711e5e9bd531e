package dicom

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// FrameCompressor turns a raw frame into a single-frame codestream for one
// transfer syntax.
type FrameCompressor interface {
	// Compress encodes interleaved 8-bit pixels. channels is 1 or 3.
	Compress(pix []uint8, width, height, channels int) ([]byte, error)
	// TransferSyntaxUID identifies the resulting encoding.
	TransferSyntaxUID() string
}

// JPEGCompressor produces JPEG Baseline (Process 1) codestreams, the
// encoding behind transfer syntax 1.2.840.10008.1.2.4.50.
type JPEGCompressor struct {
	Quality int
}

// NewJPEGCompressor validates the quality setting, which follows the usual
// 1..100 JPEG convention.
func NewJPEGCompressor(quality int) (*JPEGCompressor, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d out of range 1-100", quality)
	}
	return &JPEGCompressor{Quality: quality}, nil
}

func (c *JPEGCompressor) TransferSyntaxUID() string { return "1.2.840.10008.1.2.4.50" }

func (c *JPEGCompressor) Compress(pix []uint8, width, height, channels int) ([]byte, error) {
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("pixel slice length %d does not match %dx%dx%d", len(pix), width, height, channels)
	}
	var img image.Image
	switch channels {
	case 1:
		g := image.NewGray(image.Rect(0, 0, width, height))
		copy(g.Pix, pix)
		img = g
	case 3:
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		for i := 0; i < width*height; i++ {
			rgba.Pix[i*4] = pix[i*3]
			rgba.Pix[i*4+1] = pix[i*3+1]
			rgba.Pix[i*4+2] = pix[i*3+2]
			rgba.Pix[i*4+3] = 255
		}
		img = rgba
	default:
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.Quality}); err != nil {
		return nil, fmt.Errorf("jpeg encode: %w", err)
	}
	return buf.Bytes(), nil
}

// RawCompressor passes pixels through untouched for Explicit VR Little
// Endian output, where frames are stored native rather than encapsulated.
type RawCompressor struct{}

func (RawCompressor) TransferSyntaxUID() string { return "1.2.840.10008.1.2.1" }

func (RawCompressor) Compress(pix []uint8, width, height, channels int) ([]byte, error) {
	if len(pix) != width*height*channels {
		return nil, fmt.Errorf("pixel slice length %d does not match %dx%dx%d", len(pix), width, height, channels)
	}
	out := make([]byte, len(pix))
	copy(out, pix)
	return out, nil
}
