package catalog

import (
	"slices"
	"strings"

	"github.com/quarkdb/colcomp/format"
	"github.com/quarkdb/colcomp/internal/hash"
)

// ConfigID identifies one attribute compression configuration.
//
// Identifiers below FirstNormalConfigID are sentinels for built-in
// configurations: they are never persisted as rows and never deletable.
type ConfigID uint32

const (
	// InvalidConfigID means "no compression configured" (plain storage).
	InvalidConfigID ConfigID = 0

	// FirstNormalConfigID is the lowest identifier the allocator hands out
	// for persisted configurations. Everything below is reserved for
	// built-in sentinels.
	FirstNormalConfigID ConfigID = 16384
)

// BuiltinConfigID returns the sentinel configuration id for a built-in
// method's storage id.
func BuiltinConfigID(sid format.StorageID) ConfigID {
	return ConfigID(sid) + 1
}

// BuiltinStorageID recovers the storage id encoded in a built-in sentinel.
// The boolean result is false when id is not a built-in sentinel.
func BuiltinStorageID(id ConfigID) (format.StorageID, bool) {
	if !id.Builtin() {
		return 0, false
	}

	return format.StorageID(id - 1), true
}

// Builtin reports whether the id denotes an implicit built-in configuration.
func (id ConfigID) Builtin() bool {
	return id != InvalidConfigID && id < FirstNormalConfigID
}

// Valid reports whether the id denotes any configuration at all.
func (id ConfigID) Valid() bool {
	return id != InvalidConfigID
}

// KV is one method-specific compression option.
type KV struct {
	Key   string
	Value string
}

// Options is an ordered list of method-specific options. Equality between
// option lists ignores order; the textual form keeps it.
type Options []KV

// Equal reports order-insensitive multiset equality of key/value pairs.
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	if len(o) == 0 {
		return true
	}

	counts := make(map[KV]int, len(o))
	for _, kv := range o {
		counts[kv]++
	}
	for _, kv := range other {
		counts[kv]--
		if counts[kv] < 0 {
			return false
		}
	}

	return true
}

// Text renders the order-sensitive textual form, e.g. "level=3, window=8".
func (o Options) Text() string {
	var sb strings.Builder
	for i, kv := range o {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(kv.Key)
		sb.WriteByte('=')
		sb.WriteString(kv.Value)
	}

	return sb.String()
}

// Fingerprint hashes the canonical (key-sorted) option text. Two lists that
// are Equal always share a fingerprint, so the reuse search can reject
// non-matches cheaply before comparing pair by pair.
func (o Options) Fingerprint() uint64 {
	parts := make([]string, 0, len(o)*2)
	for _, kv := range o.sorted() {
		parts = append(parts, kv.Key, kv.Value)
	}

	return hash.Fingerprint(parts...)
}

func (o Options) sorted() Options {
	if len(o) < 2 {
		return o
	}

	out := make(Options, len(o))
	copy(out, o)
	slices.SortFunc(out, func(a, b KV) int {
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}

		return strings.Compare(a.Value, b.Value)
	})

	return out
}

// ColumnCompression is the DDL-level compression clause for one column:
// a method name, method-specific options, and the names of previously used
// methods whose stored values must stay readable without a rewrite.
type ColumnCompression struct {
	MethodName string
	Options    Options
	Preserve   []string
}

// Column is the host schema catalog's descriptor for one table column.
// The store treats it as a value object: it reads the storage mode and the
// active configuration id, and never creates or persists descriptors.
type Column struct {
	RelID       uint32             // owning table id, zero while the column is being created
	Num         int16              // column number within the table
	Name        string             // column name
	Mode        format.StorageMode // storage mode; plain never compresses
	Compression ConfigID           // currently active configuration
}

// BulkLoad carries the pre-computed configuration identifier for a single
// migration operation (loading pre-existing data whose values are already
// encoded under known configuration ids). It replaces any notion of a
// process-wide "next id" slot: each operation states its expectation.
type BulkLoad struct {
	ConfigID ConfigID
}
