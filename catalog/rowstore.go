package catalog

import (
	"iter"

	"github.com/quarkdb/colcomp/format"
)

// ConfigRow is one persisted attribute compression configuration.
//
// RelID is zero only while the owning column is still being created; the
// host catalog rewrites it once the table exists. Built-in configurations
// never appear as rows at all — they exist only as low-valued ConfigIDs
// and dependency edges.
type ConfigRow struct {
	ID          ConfigID
	Method      format.MethodID
	RelID       uint32
	AttNum      int16
	Options     Options
	OptionsHash uint64 // Options.Fingerprint(), recomputed on insert
}

// RowStore is the narrow contract the metadata store needs from the host
// engine's row storage: keyed scans, point lookup, insert, delete. All
// calls happen inside the host's unit of work under its locking; a scan's
// iteration order across equal keys is unspecified but stable for the
// duration of that scan.
type RowStore interface {
	// ScanColumn returns the configuration rows recorded for one
	// (table, column). The sequence is finite and restartable.
	ScanColumn(relID uint32, attNum int16) iter.Seq[ConfigRow]

	// Get looks up a configuration row by id.
	Get(id ConfigID) (ConfigRow, bool)

	// Insert persists a new configuration row.
	Insert(row ConfigRow) error

	// Delete removes the row with the given id.
	Delete(id ConfigID) error
}

// IDAllocator hands out configuration identifiers, monotonically increasing
// and unique across the metadata table, always at or above
// FirstNormalConfigID.
type IDAllocator interface {
	NextConfigID() ConfigID
}

// ObjectClass tags the kind of catalog object a dependency edge endpoint
// refers to.
type ObjectClass uint8

const (
	ClassTable  ObjectClass = iota + 1 // a table; SubID selects the column
	ClassConfig                        // an attribute compression configuration
	ClassMethod                        // a compression method
)

// ObjectRef addresses one catalog object (optionally a sub-object, such as
// a column within a table).
type ObjectRef struct {
	Class ObjectClass
	ID    uint32
	SubID int32
}

// TableColumnRef addresses a column as a dependency endpoint.
func TableColumnRef(relID uint32, attNum int16) ObjectRef {
	return ObjectRef{Class: ClassTable, ID: relID, SubID: int32(attNum)}
}

// ConfigRef addresses a configuration as a dependency endpoint.
func ConfigRef(id ConfigID) ObjectRef {
	return ObjectRef{Class: ClassConfig, ID: uint32(id)}
}

// MethodRef addresses a compression method as a dependency endpoint.
func MethodRef(id format.MethodID) ObjectRef {
	return ObjectRef{Class: ClassMethod, ID: uint32(id)}
}

// Edge is a directed dependency: Dependent requires Referenced to exist.
type Edge struct {
	Dependent  ObjectRef
	Referenced ObjectRef
}

// EdgePattern is a partial key over edge fields; a nil field matches any
// value. It replaces ad hoc field-by-field comparison at call sites.
type EdgePattern struct {
	Dependent  *ObjectRef
	Referenced *ObjectRef
}

// Match reports whether the edge satisfies the pattern.
func (p EdgePattern) Match(e Edge) bool {
	if p.Dependent != nil && *p.Dependent != e.Dependent {
		return false
	}
	if p.Referenced != nil && *p.Referenced != e.Referenced {
		return false
	}

	return true
}

// DependencyTracker is the contract for the host engine's object dependency
// catalog, reduced to the three operations this store needs.
type DependencyTracker interface {
	// AddEdge records that dependent requires referenced. Recording the
	// same edge twice is a no-op.
	AddEdge(dependent, referenced ObjectRef) error

	// Find returns the edges matching the pattern; finite and restartable.
	Find(p EdgePattern) iter.Seq[Edge]

	// DeleteEdge removes one previously recorded edge.
	DeleteEdge(e Edge) error
}

// ColumnCatalog exposes the host schema catalog's column descriptors.
// The active configuration id lives on the descriptor, not in this store.
type ColumnCatalog interface {
	Lookup(relID uint32, attNum int16) (Column, bool)
	LookupByName(relID uint32, name string) (Column, bool)
}
