package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2 implements the Method contract with S2 block compression.
//
// S2 is not a built-in method: it exists to be registered through
// Registry.Register, picking up a storage id from the registered range.
type S2 struct{}

var _ Method = S2{}

func (S2) Name() string { return "s2" }

// Compress encodes raw after headerSize reserved bytes. Returns nil when
// the encoding is not smaller than the input.
func (S2) Compress(raw []byte, headerSize int) []byte {
	if len(raw) == 0 {
		return nil
	}

	bound := s2.MaxEncodedLen(len(raw))
	if bound < 0 {
		return nil
	}
	dst := make([]byte, headerSize+bound)

	enc := s2.Encode(dst[headerSize:], raw)
	if len(enc) >= len(raw) {
		return nil
	}

	return dst[:headerSize+len(enc)]
}

// Decompress decodes the payload after headerSize bytes and verifies the
// result against the framing-declared raw length.
func (S2) Decompress(data []byte, headerSize, rawLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || rawLen < 0 {
		return nil, fmt.Errorf("s2: reserved header out of range: %w", ErrCorruptedData)
	}

	out, err := s2.Decode(make([]byte, 0, rawLen), data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("s2: %w", ErrCorruptedData)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("s2: decoded %d bytes, framing declared %d: %w", len(out), rawLen, ErrCorruptedData)
	}

	return out, nil
}

// DecompressSlice decodes the block and returns the requested prefix.
// The s2 block format records its own decoded length, so the full decode
// is bounded; the format has no partial block entry point.
func (S2) DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || wantLen < 0 {
		return nil, fmt.Errorf("s2: reserved header out of range: %w", ErrCorruptedData)
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	out, err := s2.Decode(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("s2: %w", ErrCorruptedData)
	}
	if len(out) > wantLen {
		out = out[:wantLen]
	}

	return out, nil
}
