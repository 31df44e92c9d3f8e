package compress

import (
	"errors"
)

var (
	// ErrCorruptedData reports that a decode call could not reconstruct the
	// declared length from the encoded bytes. It is a storage-integrity
	// fault: callers must abort the enclosing read, never retry or truncate.
	ErrCorruptedData = errors.New("compressed data is corrupt")

	// ErrInvalidMethod reports an unrecognized method or storage identifier.
	// Identifiers are only ever supplied by trusted internal callers, so
	// this indicates corrupted metadata or a bug, not bad user input.
	ErrInvalidMethod = errors.New("invalid compression method")
)

// Method is the contract every compression method implements.
//
// Every operation takes a header size: the number of bytes the storage layer
// reserves in front of the codec payload for its own framing. The encoded
// layout is always [header bytes][codec payload], and the payload never
// embeds the raw length — the storage layer's framing supplies it on decode.
//
// Implementations must be pure with respect to their inputs: no shared
// mutable state between calls, safe for concurrent use across values.
type Method interface {
	// Name returns the method's human-readable name (e.g. "lz4").
	Name() string

	// Compress encodes raw into a newly allocated buffer whose first
	// headerSize bytes are left zeroed for the caller's framing.
	//
	// Returns nil when compression is not profitable (or raw is empty);
	// the caller then stores the value uncompressed. Compression never
	// fails any other way.
	Compress(raw []byte, headerSize int) []byte

	// Decompress decodes the full value. data is the complete encoded
	// buffer including the reserved header; rawLen is the original length
	// recorded by the caller's framing.
	//
	// Returns ErrCorruptedData if the payload does not decode to exactly
	// rawLen bytes.
	Decompress(data []byte, headerSize, rawLen int) ([]byte, error)

	// DecompressSlice decodes only the first wantLen bytes of the original
	// value, for partial reads of large values. If wantLen is at least the
	// full original length it behaves like Decompress.
	//
	// Returns ErrCorruptedData if wantLen decoded bytes cannot be produced
	// and the payload does not end cleanly before that.
	DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error)
}
