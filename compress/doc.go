// Package compress provides the compression method contract, the method
// registry, and the concrete codecs used for out-of-line column values.
//
// # Overview
//
// A compression method encodes a single value into the layout
//
//	[reserved header bytes][codec payload]
//
// where the header region belongs to the storage layer's framing and the
// payload never embeds the original length — framing supplies it to every
// decode call. Methods implement:
//
//	type Method interface {
//	    Name() string
//	    Compress(raw []byte, headerSize int) []byte
//	    Decompress(data []byte, headerSize, rawLen int) ([]byte, error)
//	    DecompressSlice(data []byte, headerSize, wantLen int) ([]byte, error)
//	}
//
// Compress reporting "no result" (nil) is the documented graceful fallback
// to uncompressed storage, not an error. Decode failures are always
// ErrCorruptedData and must abort the enclosing read; a codec never returns
// truncated data silently.
//
// # Registry
//
// The Registry binds each method to a stable one-byte id (what catalog rows
// reference) and a storage id (what value framing records). Built-in
// methods — lz4 and zstd — occupy the reserved low storage range and are
// installed by NewRegistry; additional methods are added with Register,
// which is append-only for the process lifetime.
//
// # Codecs
//
// LZ4 (pierrec/lz4 block format) is the default method. Zstd builds on
// klauspost/compress by default and on valyala/gozstd under the "gozstd"
// build tag. S2 ships as a ready-to-register non-built-in method.
package compress
