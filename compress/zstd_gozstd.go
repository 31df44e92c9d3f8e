//go:build gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress encodes raw after headerSize reserved bytes using libzstd at
// the default level. CompressLevel appends, so the reserved header doubles
// as the destination prefix. Returns nil when the frame is not smaller
// than the input.
func (Zstd) Compress(raw []byte, headerSize int) []byte {
	if len(raw) == 0 {
		return nil
	}

	dst := make([]byte, headerSize, headerSize+len(raw))
	out := gozstd.CompressLevel(dst, raw, 3)
	if len(out)-headerSize >= len(raw) {
		return nil
	}

	return out
}

// Decompress decodes the payload after headerSize bytes and verifies the
// result against the framing-declared raw length.
func (Zstd) Decompress(data []byte, headerSize, rawLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || rawLen < 0 {
		return nil, fmt.Errorf("zstd: reserved header out of range: %w", ErrCorruptedData)
	}

	out, err := gozstd.Decompress(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", ErrCorruptedData)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("zstd: decoded %d bytes, framing declared %d: %w", len(out), rawLen, ErrCorruptedData)
	}

	return out, nil
}

// DecompressSlice decodes the whole frame and returns the requested
// prefix. libzstd's one-shot API has no partial entry point; the streaming
// reader would not beat a single Decompress call for catalog-sized values.
func (Zstd) DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || wantLen < 0 {
		return nil, fmt.Errorf("zstd: reserved header out of range: %w", ErrCorruptedData)
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	out, err := gozstd.Decompress(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", ErrCorruptedData)
	}
	if len(out) > wantLen {
		out = out[:wantLen]
	}

	return out, nil
}
