package colcomp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkdb/colcomp/catalog"
	"github.com/quarkdb/colcomp/compress"
	"github.com/quarkdb/colcomp/format"
	"github.com/quarkdb/colcomp/memstore"
)

func TestDefaultRegistryHasS2(t *testing.T) {
	id, m, ok := compress.DefaultRegistry.ByName("s2")
	require.True(t, ok, "this package registers s2 at init")
	require.Equal(t, MethodS2, id)
	require.Equal(t, "s2", m.Name())
}

func TestResolve(t *testing.T) {
	m, err := Resolve("lz4")
	require.NoError(t, err)
	require.Equal(t, "lz4", m.Name())

	_, err = Resolve("brotli")
	require.ErrorIs(t, err, catalog.ErrUnknownMethod)
}

// TestEndToEnd walks the full life of a column's compression setting: bind
// a method, compress and read back a value, change the method with
// PRESERVE, clean up, and inspect the history.
func TestEndToEnd(t *testing.T) {
	eng := memstore.New()
	store, err := NewStore(eng, eng, eng, eng)
	require.NoError(t, err)

	col := catalog.Column{RelID: 1, Num: 1, Name: "document", Mode: format.StorageExtended}
	eng.PutColumn(col)

	// SET COMPRESSION lz4
	res, err := store.CreateAttributeCompression(col, &catalog.ColumnCompression{MethodName: "lz4"}, nil)
	require.NoError(t, err)
	require.False(t, res.NeedRewrite)
	eng.SetActive(col.RelID, col.Num, res.ConfigID)
	col.Compression = res.ConfigID

	// Value write path: resolve the active codec and compress.
	const headerSize = 4
	raw := bytes.Repeat([]byte("attribute compression "), 500)
	codec, err := store.MethodFor(col.Compression)
	require.NoError(t, err)
	encoded := codec.Compress(raw, headerSize)
	require.NotNil(t, encoded)

	// Value read path: full and partial decode.
	decoded, err := codec.Decompress(encoded, headerSize, len(raw))
	require.NoError(t, err)
	require.True(t, bytes.Equal(raw, decoded))

	prefix, err := codec.DecompressSlice(encoded, headerSize, 64)
	require.NoError(t, err)
	require.True(t, bytes.Equal(raw[:64], prefix))

	// SET COMPRESSION zstd PRESERVE (lz4): no rewrite needed.
	res2, err := store.CreateAttributeCompression(col, &catalog.ColumnCompression{
		MethodName: "zstd",
		Preserve:   []string{"lz4"},
	}, nil)
	require.NoError(t, err)
	require.False(t, res2.NeedRewrite)
	require.Equal(t, []format.MethodID{format.MethodLZ4}, res2.Preserved)
	eng.SetActive(col.RelID, col.Num, res2.ConfigID)
	col.Compression = res2.ConfigID

	// Old values stay readable under the preserved configuration.
	oldCodec, err := store.MethodFor(res.ConfigID)
	require.NoError(t, err)
	decoded, err = oldCodec.Decompress(encoded, headerSize, len(raw))
	require.NoError(t, err)
	require.True(t, bytes.Equal(raw, decoded))

	require.NoError(t, store.CleanupAttributeCompression(col.RelID, col.Num, res2.Preserved))
	_, ok := eng.Get(res.ConfigID)
	require.True(t, ok, "preserved configuration survives cleanup")

	history, ok, err := store.ColumnCompressionHistory(col.RelID, col.Name)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "lz4, zstd", history)
}
