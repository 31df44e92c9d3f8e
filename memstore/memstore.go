package memstore

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/quarkdb/colcomp/catalog"
)

type columnKey struct {
	relID  uint32
	attNum int16
}

type columnNameKey struct {
	relID uint32
	name  string
}

// Engine is an in-memory implementation of the catalog collaborator
// contracts: row store, dependency tracker, id allocator, and column
// catalog. It backs the test suite and hosts that embed the store without
// a storage engine of their own.
//
// Mutations are visible immediately, which models a single-command unit of
// work; a host engine would defer visibility to its own commit.
type Engine struct {
	mu     sync.Mutex
	rows   map[catalog.ConfigID]catalog.ConfigRow
	order  []catalog.ConfigID // insertion order, keeps scans stable
	edges  []catalog.Edge
	cols   map[columnKey]catalog.Column
	byName map[columnNameKey]columnKey
	nextID catalog.ConfigID
}

var (
	_ catalog.RowStore          = (*Engine)(nil)
	_ catalog.DependencyTracker = (*Engine)(nil)
	_ catalog.IDAllocator       = (*Engine)(nil)
	_ catalog.ColumnCatalog     = (*Engine)(nil)
)

// New creates an empty engine whose allocator starts at
// catalog.FirstNormalConfigID.
func New() *Engine {
	return &Engine{
		rows:   make(map[catalog.ConfigID]catalog.ConfigRow),
		cols:   make(map[columnKey]catalog.Column),
		byName: make(map[columnNameKey]columnKey),
		nextID: catalog.FirstNormalConfigID,
	}
}

// PutColumn upserts a column descriptor.
func (e *Engine) PutColumn(col catalog.Column) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := columnKey{relID: col.RelID, attNum: col.Num}
	e.cols[key] = col
	e.byName[columnNameKey{relID: col.RelID, name: col.Name}] = key
}

// SetActive writes the active configuration id onto a column descriptor,
// standing in for the host catalog's descriptor update.
func (e *Engine) SetActive(relID uint32, attNum int16, id catalog.ConfigID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := columnKey{relID: relID, attNum: attNum}
	col, ok := e.cols[key]
	if !ok {
		return
	}
	col.Compression = id
	e.cols[key] = col
}

// Lookup implements catalog.ColumnCatalog.
func (e *Engine) Lookup(relID uint32, attNum int16) (catalog.Column, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	col, ok := e.cols[columnKey{relID: relID, attNum: attNum}]

	return col, ok
}

// LookupByName implements catalog.ColumnCatalog.
func (e *Engine) LookupByName(relID uint32, name string) (catalog.Column, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, ok := e.byName[columnNameKey{relID: relID, name: name}]
	if !ok {
		return catalog.Column{}, false
	}
	col, ok := e.cols[key]

	return col, ok
}

// NextConfigID implements catalog.IDAllocator.
func (e *Engine) NextConfigID() catalog.ConfigID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++

	return id
}

// ScanColumn implements catalog.RowStore. The sequence snapshots the
// matching rows up front, so it stays stable while the caller deletes.
func (e *Engine) ScanColumn(relID uint32, attNum int16) iter.Seq[catalog.ConfigRow] {
	e.mu.Lock()
	matched := make([]catalog.ConfigRow, 0, len(e.order))
	for _, id := range e.order {
		row, ok := e.rows[id]
		if ok && row.RelID == relID && row.AttNum == attNum {
			matched = append(matched, row)
		}
	}
	e.mu.Unlock()

	return slices.Values(matched)
}

// Get implements catalog.RowStore.
func (e *Engine) Get(id catalog.ConfigID) (catalog.ConfigRow, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.rows[id]

	return row, ok
}

// Insert implements catalog.RowStore.
func (e *Engine) Insert(row catalog.ConfigRow) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.rows[row.ID]; ok {
		return fmt.Errorf("duplicate configuration id %d", row.ID)
	}
	e.rows[row.ID] = row
	e.order = append(e.order, row.ID)

	return nil
}

// Delete implements catalog.RowStore.
func (e *Engine) Delete(id catalog.ConfigID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.rows[id]; !ok {
		return fmt.Errorf("configuration id %d not found", id)
	}
	delete(e.rows, id)
	e.order = slices.DeleteFunc(e.order, func(other catalog.ConfigID) bool { return other == id })

	return nil
}

// AddEdge implements catalog.DependencyTracker. Duplicate edges collapse.
func (e *Engine) AddEdge(dependent, referenced catalog.ObjectRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	edge := catalog.Edge{Dependent: dependent, Referenced: referenced}
	if slices.Contains(e.edges, edge) {
		return nil
	}
	e.edges = append(e.edges, edge)

	return nil
}

// Find implements catalog.DependencyTracker. The sequence snapshots the
// matching edges up front.
func (e *Engine) Find(p catalog.EdgePattern) iter.Seq[catalog.Edge] {
	e.mu.Lock()
	matched := make([]catalog.Edge, 0, len(e.edges))
	for _, edge := range e.edges {
		if p.Match(edge) {
			matched = append(matched, edge)
		}
	}
	e.mu.Unlock()

	return slices.Values(matched)
}

// DeleteEdge implements catalog.DependencyTracker.
func (e *Engine) DeleteEdge(edge catalog.Edge) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := slices.Index(e.edges, edge)
	if i < 0 {
		return fmt.Errorf("dependency edge not found: %+v", edge)
	}
	e.edges = slices.Delete(e.edges, i, i+1)

	return nil
}
