package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testMethods lists every codec in the package; the contract tests run the
// same properties over each.
var testMethods = []Method{LZ4{}, Zstd{}, S2{}}

func compressibleData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 16)
	}

	return data
}

func incompressibleData(n int) []byte {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, n)
	rng.Read(data)

	return data
}

func TestMethod_CompressDecompressRoundtrip(t *testing.T) {
	raw := compressibleData(8192)

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			for _, headerSize := range []int{0, 4, 10} {
				encoded := m.Compress(raw, headerSize)
				require.NotNil(t, encoded, "compressible input should produce a result")
				require.Less(t, len(encoded)-headerSize, len(raw), "payload should be smaller than input")

				// The header region belongs to the caller's framing.
				for _, b := range encoded[:headerSize] {
					require.Zero(t, b, "reserved header bytes should be zeroed")
				}

				decoded, err := m.Decompress(encoded, headerSize, len(raw))
				require.NoError(t, err)
				require.True(t, bytes.Equal(raw, decoded), "roundtrip should reproduce the original bytes")
			}
		})
	}
}

func TestMethod_CompressEmptyInput(t *testing.T) {
	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			require.Nil(t, m.Compress(nil, 4), "empty input should report no result")
			require.Nil(t, m.Compress([]byte{}, 0), "empty input should report no result")
		})
	}
}

func TestMethod_CompressIncompressibleInput(t *testing.T) {
	raw := incompressibleData(4096)

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			encoded := m.Compress(raw, 4)
			if encoded != nil {
				require.Less(t, len(encoded)-4, len(raw), "a returned encoding must be smaller than the input")
				return
			}
			// nil is the documented fallback to uncompressed storage.
		})
	}
}

func TestMethod_DecompressSlice(t *testing.T) {
	raw := compressibleData(10000)
	const headerSize = 4

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			encoded := m.Compress(raw, headerSize)
			require.NotNil(t, encoded)

			for _, want := range []int{0, 1, 16, len(raw) / 2, len(raw) - 1, len(raw)} {
				got, err := m.DecompressSlice(encoded, headerSize, want)
				require.NoError(t, err, "slice of %d bytes", want)
				require.True(t, bytes.Equal(raw[:want], got), "slice of %d bytes should match the original prefix", want)
			}
		})
	}
}

func TestMethod_DecompressSliceBeyondFullLength(t *testing.T) {
	raw := compressibleData(2048)

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			encoded := m.Compress(raw, 0)
			require.NotNil(t, encoded)

			got, err := m.DecompressSlice(encoded, 0, len(raw)+100)
			require.NoError(t, err)
			require.True(t, bytes.Equal(raw, got), "over-long slice request should behave like a full decompress")
		})
	}
}

func TestMethod_DecompressCorruptedData(t *testing.T) {
	raw := compressibleData(8192)
	const headerSize = 4

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			encoded := m.Compress(raw, headerSize)
			require.NotNil(t, encoded)

			// Cutting the tail makes the payload undecodable at the
			// declared length; the codec must fail, not truncate.
			truncated := encoded[:len(encoded)-1]
			_, err := m.Decompress(truncated, headerSize, len(raw))
			require.ErrorIs(t, err, ErrCorruptedData)

			_, err = m.DecompressSlice(truncated, headerSize, len(raw))
			require.ErrorIs(t, err, ErrCorruptedData)
		})
	}
}

func TestMethod_DecompressWrongDeclaredLength(t *testing.T) {
	raw := compressibleData(4096)

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			encoded := m.Compress(raw, 0)
			require.NotNil(t, encoded)

			_, err := m.Decompress(encoded, 0, len(raw)+1)
			require.ErrorIs(t, err, ErrCorruptedData, "framing length above the real size is corruption")
		})
	}
}

func TestMethod_DecompressHeaderOutOfRange(t *testing.T) {
	raw := compressibleData(256)

	for _, m := range testMethods {
		t.Run(m.Name(), func(t *testing.T) {
			_, err := m.Decompress([]byte{1, 2}, 8, 100)
			require.ErrorIs(t, err, ErrCorruptedData)

			_, err = m.DecompressSlice([]byte{1, 2}, 8, 10)
			require.ErrorIs(t, err, ErrCorruptedData)

			// A negative header size fails the same way, it must not panic.
			encoded := m.Compress(raw, 0)
			require.NotNil(t, encoded)

			_, err = m.Decompress(encoded, -1, len(raw))
			require.ErrorIs(t, err, ErrCorruptedData)

			_, err = m.DecompressSlice(encoded, -1, 16)
			require.ErrorIs(t, err, ErrCorruptedData)
		})
	}
}

func TestLZ4_PurityAcrossConcurrentUse(t *testing.T) {
	raw := compressibleData(4096)
	codec := LZ4{}
	encoded := codec.Compress(raw, 0)
	require.NotNil(t, encoded)

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 50 {
				decoded, err := codec.Decompress(encoded, 0, len(raw))
				if err != nil || !bytes.Equal(raw, decoded) {
					t.Error("concurrent decompress mismatch")
					return
				}
			}
		}()
	}
	for range 8 {
		<-done
	}
}
