//go:build !gozstd

package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdEncoderPool pools zstd encoders for reuse. The klauspost encoder is
// designed to operate without allocations after a warmup, so storing warm
// encoders is the documented fast path.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

// zstdDecoderPool pools whole-buffer decoders used by Decompress.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// Compress encodes raw after headerSize reserved bytes using a pooled
// encoder. EncodeAll appends, so the reserved header doubles as the
// destination prefix. Returns nil when the frame is not smaller than the
// input.
func (Zstd) Compress(raw []byte, headerSize int) []byte {
	if len(raw) == 0 {
		return nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	dst := make([]byte, headerSize, headerSize+len(raw))
	out := encoder.EncodeAll(raw, dst)
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

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	dst := make([]byte, 0, rawLen)
	out, err := decoder.DecodeAll(data[headerSize:], dst)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", ErrCorruptedData)
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("zstd: decoded %d bytes, framing declared %d: %w", len(out), rawLen, ErrCorruptedData)
	}

	return out, nil
}

// DecompressSlice streams the frame and stops after wantLen decoded bytes,
// so a prefix read of a large value never inflates the whole thing.
// A clean end of frame before wantLen is the "wantLen covers the full
// value" case; a decode error at any point is corruption.
func (Zstd) DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error) {
	if headerSize < 0 || headerSize > len(data) || wantLen < 0 {
		return nil, fmt.Errorf("zstd: reserved header out of range: %w", ErrCorruptedData)
	}
	if wantLen == 0 {
		return []byte{}, nil
	}

	decoder, err := zstd.NewReader(bytes.NewReader(data[headerSize:]),
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", ErrCorruptedData)
	}
	defer decoder.Close()

	// Only a clean io.EOF may end the read early (wantLen covered the whole
	// value); a truncated frame surfaces as io.ErrUnexpectedEOF or a decode
	// error and must not pass as a short result.
	dst := make([]byte, wantLen)
	n := 0
	for n < wantLen {
		r, err := decoder.Read(dst[n:])
		n += r
		if errors.Is(err, io.EOF) {
			return dst[:n], nil
		}
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", ErrCorruptedData)
		}
	}

	return dst, nil
}
