package dicom

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func TestEncapsulateLayout(t *testing.T) {
	frames := [][]byte{
		bytes.Repeat([]byte{0xAA}, 5),
		bytes.Repeat([]byte{0xBB}, 6),
		bytes.Repeat([]byte{0xCC}, 7),
	}
	stream, err := Encapsulate(frames)
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}

	// Odd frames gain one pad byte.
	for i, want := range []int{6, 6, 8} {
		if len(stream.Frames[i]) != want {
			t.Errorf("fragment %d length %d, want %d", i, len(stream.Frames[i]), want)
		}
	}
	if stream.Frames[0][5] != 0 {
		t.Error("pad byte is not 0x00")
	}
	if !bytes.Equal(stream.Frames[1], frames[1]) {
		t.Error("even-length frame was modified")
	}

	// Offsets run from the end of the offset table item to each item tag.
	wantOffsets := []uint32{0, 14, 28}
	for i, off := range stream.Offsets {
		if off != wantOffsets[i] {
			t.Errorf("offset %d = %d, want %d", i, off, wantOffsets[i])
		}
	}

	// BOT item (8+12) + three fragment items (14+14+16) + delimiter (8).
	if len(stream.Bytes) != 72 {
		t.Errorf("stream length %d, want 72", len(stream.Bytes))
	}
	if !bytes.Equal(stream.Bytes[:4], []byte{0xFE, 0xFF, 0x00, 0xE0}) {
		t.Errorf("stream does not open with the item tag: % X", stream.Bytes[:4])
	}
	if botLen := binary.LittleEndian.Uint32(stream.Bytes[4:8]); botLen != 12 {
		t.Errorf("offset table length %d, want 12", botLen)
	}
	tail := stream.Bytes[len(stream.Bytes)-8:]
	if !bytes.Equal(tail[:4], []byte{0xFE, 0xFF, 0xDD, 0xE0}) {
		t.Errorf("stream does not close with the delimiter tag: % X", tail[:4])
	}
	if binary.LittleEndian.Uint32(tail[4:]) != 0 {
		t.Error("delimiter length is nonzero")
	}
}

func TestEncapsulateRoundTrip(t *testing.T) {
	frames := [][]byte{
		bytes.Repeat([]byte{0x11}, 301),
		bytes.Repeat([]byte{0x22}, 4096),
		{0xFF, 0xD8, 0xFF},
	}
	stream, err := Encapsulate(frames)
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}

	gotFrames, gotOffsets, err := Decapsulate(stream.Bytes)
	if err != nil {
		t.Fatalf("decapsulate: %v", err)
	}
	if len(gotFrames) != len(frames) {
		t.Fatalf("round trip returned %d frames, want %d", len(gotFrames), len(frames))
	}
	for i := range gotFrames {
		if !bytes.Equal(gotFrames[i], stream.Frames[i]) {
			t.Errorf("fragment %d differs after round trip", i)
		}
		if gotOffsets[i] != stream.Offsets[i] {
			t.Errorf("offset %d = %d, want %d", i, gotOffsets[i], stream.Offsets[i])
		}
	}

	n, err := CountFragments(stream.Bytes)
	if err != nil {
		t.Fatalf("count fragments: %v", err)
	}
	if n != 3 {
		t.Errorf("fragment count %d, want 3", n)
	}
}

func TestEncapsulateErrors(t *testing.T) {
	if _, err := Encapsulate(nil); err == nil {
		t.Error("no error for empty frame list")
	}
	if _, err := Encapsulate([][]byte{{0x01}, {}}); err == nil {
		t.Error("no error for empty codestream")
	}
}

func TestDecapsulateErrors(t *testing.T) {
	valid, err := Encapsulate([][]byte{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("encapsulate: %v", err)
	}

	corrupt := func(mutate func(b []byte) []byte) []byte {
		b := make([]byte, len(valid.Bytes))
		copy(b, valid.Bytes)
		return mutate(b)
	}

	cases := []struct {
		name   string
		stream []byte
		errSub string
	}{
		{
			name:   "empty stream",
			stream: nil,
			errSub: "truncated item header",
		},
		{
			name: "wrong leading tag",
			stream: corrupt(func(b []byte) []byte {
				b[2] = 0xDD
				return b
			}),
			errSub: "expected offset table item tag",
		},
		{
			name: "unaligned offset table",
			stream: corrupt(func(b []byte) []byte {
				b[4] = 7
				return b
			}),
			errSub: "not a multiple of 4",
		},
		{
			name: "nonzero delimiter length",
			stream: corrupt(func(b []byte) []byte {
				b[len(b)-4] = 2
				return b
			}),
			errSub: "nonzero length",
		},
		{
			name: "trailing bytes",
			stream: corrupt(func(b []byte) []byte {
				return append(b, 0x00, 0x00)
			}),
			errSub: "trailing bytes",
		},
		{
			name: "truncated fragment",
			stream: corrupt(func(b []byte) []byte {
				return b[:len(b)-12]
			}),
			errSub: "truncated",
		},
		{
			name: "odd fragment length",
			stream: corrupt(func(b []byte) []byte {
				// First fragment header sits after the 16-byte BOT item.
				binary.LittleEndian.PutUint32(b[20:24], 3)
				return b
			}),
			errSub: "odd length",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decapsulate(tc.stream)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("error %q does not contain %q", err, tc.errSub)
			}
		})
	}
}
