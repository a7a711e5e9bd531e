package dicom

import (
	"bytes"
	"testing"
)

func TestNewJPEGCompressorValidation(t *testing.T) {
	for _, q := range []int{0, -1, 101} {
		if _, err := NewJPEGCompressor(q); err == nil {
			t.Errorf("quality %d: expected error, got nil", q)
		}
	}
	c, err := NewJPEGCompressor(90)
	if err != nil {
		t.Fatalf("quality 90: %v", err)
	}
	if c.TransferSyntaxUID() != "1.2.840.10008.1.2.4.50" {
		t.Errorf("transfer syntax = %q", c.TransferSyntaxUID())
	}
}

func TestJPEGCompressorGray(t *testing.T) {
	c, err := NewJPEGCompressor(90)
	if err != nil {
		t.Fatal(err)
	}
	pix := make([]uint8, 64*48)
	for i := range pix {
		pix[i] = uint8(i % 251)
	}
	cs, err := c.Compress(pix, 64, 48, 1)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if len(cs) < 4 {
		t.Fatalf("codestream too short: %d bytes", len(cs))
	}
	if !bytes.HasPrefix(cs, []byte{0xFF, 0xD8}) {
		t.Errorf("codestream does not start with SOI: % X", cs[:2])
	}
	if !bytes.HasSuffix(cs, []byte{0xFF, 0xD9}) {
		t.Errorf("codestream does not end with EOI: % X", cs[len(cs)-2:])
	}
}

func TestJPEGCompressorColor(t *testing.T) {
	c, err := NewJPEGCompressor(75)
	if err != nil {
		t.Fatal(err)
	}
	pix := make([]uint8, 32*32*3)
	for i := range pix {
		pix[i] = uint8(i)
	}
	cs, err := c.Compress(pix, 32, 32, 3)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if !bytes.HasPrefix(cs, []byte{0xFF, 0xD8}) {
		t.Error("color codestream does not start with SOI")
	}
}

func TestJPEGCompressorBadInput(t *testing.T) {
	c, err := NewJPEGCompressor(90)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Compress(make([]uint8, 10), 64, 48, 1); err == nil {
		t.Error("no error for short pixel slice")
	}
	if _, err := c.Compress(make([]uint8, 64*48*2), 64, 48, 2); err == nil {
		t.Error("no error for unsupported channel count")
	}
}

func TestRawCompressor(t *testing.T) {
	var c RawCompressor
	if c.TransferSyntaxUID() != "1.2.840.10008.1.2.1" {
		t.Errorf("transfer syntax = %q", c.TransferSyntaxUID())
	}
	pix := []uint8{1, 2, 3, 4, 5, 6}
	out, err := c.Compress(pix, 3, 2, 1)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if !bytes.Equal(out, pix) {
		t.Errorf("passthrough altered pixels: %v", out)
	}
	// The copy must not alias the input.
	out[0] = 99
	if pix[0] != 1 {
		t.Error("output aliases the input slice")
	}
	if _, err := c.Compress(pix, 4, 2, 1); err == nil {
		t.Error("no error for mismatched dimensions")
	}
}
