package dicom

import (
	"encoding/binary"
	"fmt"
)

// Encapsulated PixelData layout (PS3.5 A.4): one Basic Offset Table item,
// one fragment item per frame, then a sequence delimitation item. Item tags
// are written little-endian, so (FFFE,E000) is FE FF 00 E0 on the wire.

var (
	itemTagBytes      = []byte{0xFE, 0xFF, 0x00, 0xE0}
	delimiterTagBytes = []byte{0xFE, 0xFF, 0xDD, 0xE0}
)

// EncapsulatedStream is the exact byte layout of an encapsulated PixelData
// value, together with the padded fragments and BOT offsets that produced
// it. Frames holds one even-length fragment per input frame.
type EncapsulatedStream struct {
	Bytes   []byte
	Frames  [][]byte
	Offsets []uint32
}

// Encapsulate assembles the encapsulated stream for the given per-frame
// codestreams. Odd-length frames are padded with a single 0x00 byte; BOT
// offsets are measured from the first byte after the offset table item to
// the item tag of each fragment.
func Encapsulate(frames [][]byte) (*EncapsulatedStream, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to encapsulate")
	}

	padded := make([][]byte, len(frames))
	offsets := make([]uint32, len(frames))
	var running uint64
	for i, f := range frames {
		if len(f) == 0 {
			return nil, fmt.Errorf("frame %d has empty codestream", i)
		}
		p := f
		if len(f)%2 != 0 {
			p = make([]byte, len(f)+1)
			copy(p, f)
		}
		padded[i] = p
		if running > 0xFFFFFFFF {
			return nil, fmt.Errorf("frame %d offset %d exceeds 32-bit offset table range", i, running)
		}
		offsets[i] = uint32(running)
		running += uint64(8 + len(p))
	}

	total := 8 + 4*len(frames) // BOT item
	for _, p := range padded {
		total += 8 + len(p)
	}
	total += 8 // sequence delimiter

	buf := make([]byte, 0, total)
	buf = append(buf, itemTagBytes...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(4*len(frames)))
	for _, off := range offsets {
		buf = binary.LittleEndian.AppendUint32(buf, off)
	}
	for _, p := range padded {
		buf = append(buf, itemTagBytes...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p)))
		buf = append(buf, p...)
	}
	buf = append(buf, delimiterTagBytes...)
	buf = binary.LittleEndian.AppendUint32(buf, 0)

	return &EncapsulatedStream{Bytes: buf, Frames: padded, Offsets: offsets}, nil
}

// CountFragments walks an encapsulated stream and returns the number of
// fragment items it holds, not counting the offset table.
func CountFragments(stream []byte) (int, error) {
	frames, _, err := parseStream(stream)
	if err != nil {
		return 0, err
	}
	return len(frames), nil
}

// Decapsulate parses an encapsulated stream back into its padded fragments
// and BOT offsets. It is the inverse of Encapsulate and is used to
// cross-check streams before they are committed to a dataset.
func Decapsulate(stream []byte) (frames [][]byte, offsets []uint32, err error) {
	return parseStream(stream)
}

func parseStream(stream []byte) ([][]byte, []uint32, error) {
	pos := 0
	readItem := func() (tagBytes []byte, length uint32, err error) {
		if pos+8 > len(stream) {
			return nil, 0, fmt.Errorf("truncated item header at offset %d", pos)
		}
		tagBytes = stream[pos : pos+4]
		length = binary.LittleEndian.Uint32(stream[pos+4 : pos+8])
		pos += 8
		return tagBytes, length, nil
	}

	// Basic Offset Table.
	tagBytes, botLen, err := readItem()
	if err != nil {
		return nil, nil, err
	}
	if string(tagBytes) != string(itemTagBytes) {
		return nil, nil, fmt.Errorf("expected offset table item tag, got % X", tagBytes)
	}
	if botLen%4 != 0 {
		return nil, nil, fmt.Errorf("offset table length %d is not a multiple of 4", botLen)
	}
	if pos+int(botLen) > len(stream) {
		return nil, nil, fmt.Errorf("truncated offset table")
	}
	var offsets []uint32
	for i := 0; i < int(botLen); i += 4 {
		offsets = append(offsets, binary.LittleEndian.Uint32(stream[pos+i:pos+i+4]))
	}
	pos += int(botLen)

	var frames [][]byte
	for {
		start := pos
		tagBytes, length, err := readItem()
		if err != nil {
			return nil, nil, err
		}
		if string(tagBytes) == string(delimiterTagBytes) {
			if length != 0 {
				return nil, nil, fmt.Errorf("sequence delimiter has nonzero length %d", length)
			}
			if pos != len(stream) {
				return nil, nil, fmt.Errorf("%d trailing bytes after sequence delimiter", len(stream)-pos)
			}
			break
		}
		if string(tagBytes) != string(itemTagBytes) {
			return nil, nil, fmt.Errorf("unexpected tag % X at offset %d", tagBytes, start)
		}
		if length%2 != 0 {
			return nil, nil, fmt.Errorf("fragment at offset %d has odd length %d", start, length)
		}
		if pos+int(length) > len(stream) {
			return nil, nil, fmt.Errorf("truncated fragment at offset %d", start)
		}
		frames = append(frames, stream[pos:pos+int(length)])
		pos += int(length)
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("stream holds no fragments")
	}
	if len(offsets) > 0 && len(offsets) != len(frames) {
		return nil, nil, fmt.Errorf("offset table lists %d frames but stream holds %d", len(offsets), len(frames))
	}
	return frames, offsets, nil
}
