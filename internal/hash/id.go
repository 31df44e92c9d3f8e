package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of a sequence of text parts, separating
// them with a NUL byte so that ("ab","c") and ("a","bc") hash differently.
//
// The catalog uses it to fingerprint a configuration's canonical option
// text: the reuse search compares fingerprints before falling back to full
// key/value comparison.
func Fingerprint(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}

	return d.Sum64()
}
