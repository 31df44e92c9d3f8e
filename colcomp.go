// Package colcomp provides pluggable per-column value compression for a
// table storage engine: each column independently selects a compression
// method (and method-specific options) used to shrink the on-disk form of
// out-of-line values, with the choice persisted, reused across identical
// requests, and safely evolvable under schema changes.
//
// # Core Features
//
//   - Uniform codec contract (compress / decompress / partial decompress)
//     over a reserved-header byte layout
//   - Built-in lz4 and zstd methods, append-only registration for more
//     (s2 is registered by this package)
//   - Attribute compression catalog with configuration reuse, PRESERVE
//     handling, rewrite decisions, and two-pass dependency cleanup
//   - Introspection of every method ever applied to a column
//
// # Basic Usage
//
// Binding a method to a column and using it on the value path:
//
//	import (
//	    "github.com/quarkdb/colcomp"
//	    "github.com/quarkdb/colcomp/catalog"
//	    "github.com/quarkdb/colcomp/format"
//	    "github.com/quarkdb/colcomp/memstore"
//	)
//
//	eng := memstore.New()
//	store, _ := colcomp.NewStore(eng, eng, eng, eng)
//
//	col := catalog.Column{RelID: 1, Num: 1, Name: "payload", Mode: format.StorageExtended}
//	eng.PutColumn(col)
//
//	res, _ := store.CreateAttributeCompression(col, &catalog.ColumnCompression{MethodName: "lz4"}, nil)
//	eng.SetActive(col.RelID, col.Num, res.ConfigID)
//
//	codec, _ := store.MethodFor(res.ConfigID)
//	encoded := codec.Compress(raw, headerSize) // nil means store uncompressed
//
// # Package Structure
//
// The compress package holds the codec contract, the registry, and the
// codecs; catalog holds the metadata store and the collaborator contracts;
// memstore implements those contracts in memory for tests and embedders.
// This package wires them together and registers the non-built-in s2
// method into the default registry.
package colcomp

import (
	"fmt"

	"github.com/quarkdb/colcomp/catalog"
	"github.com/quarkdb/colcomp/compress"
	"github.com/quarkdb/colcomp/format"
)

// MethodS2 is the stable id under which this package registers the s2
// method into compress.DefaultRegistry.
const MethodS2 format.MethodID = 's'

func init() {
	if _, err := compress.DefaultRegistry.Register(MethodS2, compress.S2{}); err != nil {
		panic(fmt.Sprintf("register s2 method: %v", err))
	}
}

// NewStore builds a catalog.Store over the given collaborators; see
// catalog.NewStore.
func NewStore(rows catalog.RowStore, deps catalog.DependencyTracker, cols catalog.ColumnCatalog, ids catalog.IDAllocator, opts ...catalog.StoreOption) (*catalog.Store, error) {
	return catalog.NewStore(rows, deps, cols, ids, opts...)
}

// Resolve returns the codec registered under a method name in the default
// registry, for callers outside the catalog (e.g. ad hoc tooling).
func Resolve(methodName string) (compress.Method, error) {
	_, m, ok := compress.DefaultRegistry.ByName(methodName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownMethod, methodName)
	}

	return m, nil
}
