package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal hash-table state that benefits
// from reuse; pooling keeps Compress pure from the caller's point of view.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 implements the Method contract with LZ4 block compression at the
// default level.
//
// LZ4 blocks carry no self-describing length field, so every decode path
// takes the expected raw length from the caller's framing rather than
// reading it out of the stream.
type LZ4 struct{}

var _ Method = LZ4{}

func (LZ4) Name() string { return "lz4" }

// Compress encodes raw after headerSize reserved bytes. The destination is
// sized to the LZ4 worst-case bound for the input length; a zero result
// from the block compressor means the input is incompressible, and an
// encoding at least as large as the input is not worth storing either —
// both report "no result" by returning nil.
func (LZ4) Compress(raw []byte, headerSize int) []byte {
	if len(raw) == 0 {
		return nil
	}

	bound := lz4.CompressBlockBound(len(raw))
	dst := make([]byte, headerSize+bound)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(raw, dst[headerSize:])
	if err != nil || n == 0 || n >= len(raw) {
		return nil
	}

	return dst[:headerSize+n]
}

// Decompress decodes the payload after headerSize bytes into a buffer of
// exactly rawLen bytes. The block must decode to exactly that length;
// anything else is corruption.
func (LZ4) Decompress(data []byte, headerSize, rawLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || rawLen < 0 {
		return nil, fmt.Errorf("lz4: reserved header out of range: %w", ErrCorruptedData)
	}

	dst := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data[headerSize:], dst)
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", ErrCorruptedData)
	}
	if n != rawLen {
		return nil, fmt.Errorf("lz4: decoded %d bytes, framing declared %d: %w", n, rawLen, ErrCorruptedData)
	}

	return dst, nil
}

// DecompressSlice decodes at least the first wantLen bytes of the original
// value.
//
// The lz4 block API offers no partial entry point: a destination smaller
// than the full decoded size fails with ErrInvalidSourceShortBuffer. The
// first attempt therefore targets wantLen directly (it succeeds whenever
// wantLen covers the whole value), then falls back to doubling the buffer
// until the block decodes, returning the requested prefix. The growth cap
// bounds the damage from corrupt input claiming absurd expansion.
func (LZ4) DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || wantLen < 0 {
		return nil, fmt.Errorf("lz4: reserved header out of range: %w", ErrCorruptedData)
	}

	const maxSize = 128 * 1024 * 1024 // growth cap for the fallback path

	src := data[headerSize:]
	bufSize := wantLen
	if bufSize == 0 {
		return []byte{}, nil
	}

	for bufSize <= maxSize {
		dst := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("lz4: %w", ErrCorruptedData)
		}
		if n > wantLen {
			n = wantLen
		}

		return dst[:n], nil
	}

	return nil, fmt.Errorf("lz4: value did not decode within %d bytes: %w", maxSize, ErrCorruptedData)
}
