package compress

// Zstd implements the Method contract with Zstandard compression.
//
// Two interchangeable backends exist: the default pure-Go implementation
// (klauspost/compress) and a cgo implementation (valyala/gozstd) selected
// with the "gozstd" build tag. Both produce standard zstd frames, so values
// written by one backend decode under the other.
//
// Like lz4, the raw length is never trusted from the frame itself: decode
// paths verify the output against the length declared by the caller's
// framing and report ErrCorruptedData on any mismatch.
type Zstd struct{}

var _ Method = Zstd{}

func (Zstd) Name() string { return "zstd" }
