package catalog

import (
	"fmt"
	"slices"

	"github.com/quarkdb/colcomp/compress"
	"github.com/quarkdb/colcomp/format"
	"github.com/quarkdb/colcomp/internal/options"
)

// Store owns the lifecycle of attribute compression configurations: the
// reuse search, the rewrite/preserve decision, persistence, and dependency
// cleanup. It runs entirely inside the host engine's unit of work — the
// host's lock manager serializes compression changes per column, and the
// store introduces no locking of its own beyond what the collaborators do.
type Store struct {
	rows RowStore
	deps DependencyTracker
	cols ColumnCatalog
	ids  IDAllocator

	reg           *compress.Registry
	defaultMethod format.MethodID
}

// StoreOption configures a Store during construction.
type StoreOption = options.Option[*Store]

// WithRegistry selects the method registry to resolve names and ids
// against. Defaults to compress.DefaultRegistry.
func WithRegistry(reg *compress.Registry) StoreOption {
	return options.NoError(func(s *Store) {
		s.reg = reg
	})
}

// WithDefaultMethod selects the built-in method used when a request does
// not name one. Defaults to lz4.
func WithDefaultMethod(id format.MethodID) StoreOption {
	return options.NoError(func(s *Store) {
		s.defaultMethod = id
	})
}

// NewStore builds a Store over the host engine's collaborators. The default
// method must be a built-in one: without a persisted row, only sentinel
// configuration ids can represent it.
func NewStore(rows RowStore, deps DependencyTracker, cols ColumnCatalog, ids IDAllocator, opts ...StoreOption) (*Store, error) {
	s := &Store{
		rows:          rows,
		deps:          deps,
		cols:          cols,
		ids:           ids,
		reg:           compress.DefaultRegistry,
		defaultMethod: format.MethodLZ4,
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}
	if _, err := s.builtinConfigID(s.defaultMethod); err != nil {
		return nil, fmt.Errorf("default method %v: %w", s.defaultMethod, err)
	}

	return s, nil
}

// Registry returns the method registry the store resolves against; the
// storage engine's value read/write path shares it.
func (s *Store) Registry() *compress.Registry {
	return s.reg
}

// CreateResult is the outcome of CreateAttributeCompression.
type CreateResult struct {
	// ConfigID is the configuration now describing the request: a reused
	// row, a fresh row, a built-in sentinel, or InvalidConfigID when the
	// column's storage mode rules compression out.
	ConfigID ConfigID

	// NeedRewrite reports that existing stored values encode under methods
	// the column will no longer recognize and must be re-encoded.
	NeedRewrite bool

	// Preserved lists the methods the preserve list kept readable.
	Preserved []format.MethodID
}

// CreateAttributeCompression links a compression setting to a column,
// creating a configuration row only when no identical one exists.
//
// A nil cc means the request did not specify compression (CREATE TABLE and
// ADD COLUMN make it optional) and binds the process default. A non-nil
// bulk skips the reuse and rewrite checks and persists under the
// caller-supplied identifier; it exists solely for migrating pre-existing
// data and fails with ErrIntegrity on any identifier mismatch.
//
// Changes are visible to subsequent operations in the same unit of work as
// soon as this returns.
func (s *Store) CreateAttributeCompression(col Column, cc *ColumnCompression, bulk *BulkLoad) (CreateResult, error) {
	// Plain storage never compresses.
	if !col.Mode.Compressible() {
		return CreateResult{ConfigID: InvalidConfigID}, nil
	}

	if cc == nil {
		id, err := s.builtinConfigID(s.defaultMethod)
		if err != nil {
			return CreateResult{}, err
		}

		return CreateResult{ConfigID: id}, nil
	}

	methodID, _, ok := s.reg.ByName(cc.MethodName)
	if !ok {
		return CreateResult{}, fmt.Errorf("%w: %q", ErrUnknownMethod, cc.MethodName)
	}

	if bulk != nil {
		id, err := s.persist(col, methodID, cc.Options, bulk)
		if err != nil {
			return CreateResult{}, err
		}

		return CreateResult{ConfigID: id}, nil
	}

	var res CreateResult
	var reuse ConfigID

	// A zero RelID means the column is being created right now: there is
	// nothing to scan and nothing to rewrite.
	if col.RelID != 0 {
		var err error
		reuse, res.NeedRewrite, res.Preserved, err = s.searchColumn(col, methodID, cc)
		if err != nil {
			return CreateResult{}, err
		}
	}

	if reuse.Valid() {
		// Identical configuration already recorded for this column:
		// existing values are readable under it, so reuse never rewrites.
		res.ConfigID = reuse
		res.NeedRewrite = false

		return res, nil
	}

	id, err := s.persist(col, methodID, cc.Options, nil)
	if err != nil {
		return CreateResult{}, err
	}
	res.ConfigID = id

	return res, nil
}

// searchColumn scans the configurations already recorded for the column,
// looking for one identical to the request, and computes the rewrite
// decision from the preserve list.
//
// The set of previously used methods combines configuration rows with
// built-in methods discoverable only through dependency edges — a column
// that has only ever used a built-in method has no rows at all.
func (s *Store) searchColumn(col Column, methodID format.MethodID, cc *ColumnCompression) (reuse ConfigID, needRewrite bool, preserved []format.MethodID, err error) {
	wantHash := cc.Options.Fingerprint()

	var previous []format.MethodID

	dep := TableColumnRef(col.RelID, col.Num)
	for e := range s.deps.Find(EdgePattern{Dependent: &dep}) {
		if e.Referenced.Class != ClassConfig {
			continue
		}
		sid, ok := BuiltinStorageID(ConfigID(e.Referenced.ID))
		if !ok {
			continue
		}
		m, merr := s.reg.MethodIDFromStorageID(sid)
		if merr != nil {
			return InvalidConfigID, false, nil, merr
		}
		if !slices.Contains(previous, m) {
			previous = append(previous, m)
		}
	}

	for row := range s.rows.ScanColumn(col.RelID, col.Num) {
		if !slices.Contains(previous, row.Method) {
			previous = append(previous, row.Method)
		}
		if reuse.Valid() || row.Method != methodID {
			continue
		}
		if row.OptionsHash == wantHash && row.Options.Equal(cc.Options) {
			reuse = row.ID
		}
	}

	if len(previous) == 0 {
		// First configuration ever: nothing stored under another method.
		return reuse, false, nil, nil
	}

	if len(cc.Preserve) == 0 {
		// Without PRESERVE, values encoded under the old methods become
		// unreachable and must be re-encoded.
		return reuse, true, nil, nil
	}

	for _, name := range cc.Preserve {
		pid, _, ok := s.reg.ByName(name)
		if !ok {
			return InvalidConfigID, false, nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
		}
		// One method mentioned several times in the PRESERVE list is fine.
		if slices.Contains(preserved, pid) {
			continue
		}
		if !slices.Contains(previous, pid) {
			return InvalidConfigID, false, nil,
				fmt.Errorf("method %q was never used on column %q: %w", name, col.Name, ErrCannotPreserve)
		}
		preserved = append(preserved, pid)
		previous = slices.DeleteFunc(previous, func(m format.MethodID) bool { return m == pid })
	}

	// Anything still in the previous set is not preserved and not the new
	// method, so its values need re-encoding.
	return reuse, len(previous) > 0, preserved, nil
}

// persist writes a new configuration row and its method dependency edge,
// or resolves the caller-supplied bulk-load identifier.
func (s *Store) persist(col Column, methodID format.MethodID, opts Options, bulk *BulkLoad) (ConfigID, error) {
	var id ConfigID
	if bulk != nil {
		id = bulk.ConfigID
		if id.Builtin() {
			// The only legitimate sub-threshold identifier is the sentinel
			// of the requested built-in method.
			want, err := s.builtinConfigID(methodID)
			if err != nil || want != id {
				return InvalidConfigID,
					fmt.Errorf("bulk-load identifier %d does not denote built-in method %v: %w", id, methodID, ErrIntegrity)
			}

			return id, nil
		}
		if !id.Valid() {
			return InvalidConfigID, fmt.Errorf("bulk-load identifier missing: %w", ErrIntegrity)
		}
	} else {
		id = s.ids.NextConfigID()
		if id.Builtin() {
			// Sub-threshold allocation: an implicit built-in reference, no
			// row to store.
			return id, nil
		}
	}

	row := ConfigRow{
		ID:          id,
		Method:      methodID,
		RelID:       col.RelID,
		AttNum:      col.Num,
		Options:     slices.Clone(opts),
		OptionsHash: opts.Fingerprint(),
	}
	if err := s.rows.Insert(row); err != nil {
		return InvalidConfigID, fmt.Errorf("persist attribute compression %d: %w", id, err)
	}
	if err := s.deps.AddEdge(ConfigRef(id), MethodRef(methodID)); err != nil {
		return InvalidConfigID, fmt.Errorf("record method dependency of %d: %w", id, err)
	}

	return id, nil
}

// RemoveAttributeCompression deletes one configuration row. Built-in
// sentinels never reach the row path and are never deletable.
func (s *Store) RemoveAttributeCompression(id ConfigID) error {
	if id.Builtin() {
		return fmt.Errorf("configuration %d is built-in and cannot be removed: %w", id, ErrIntegrity)
	}

	row, ok := s.rows.Get(id)
	if !ok {
		return fmt.Errorf("lookup failed for attribute compression %d: %w", id, ErrIntegrity)
	}
	if row.RelID == 0 {
		return fmt.Errorf("configuration %d is not tied to a table: %w", id, ErrIntegrity)
	}

	return s.rows.Delete(id)
}

// CleanupAttributeCompression removes the column's configuration rows
// except the currently active one and those bound to the methods in keep,
// then removes the dependency edges left behind. Rows go first, edges
// second, so a PRESERVE-less compression change never leaves an edge
// pointing at a deleted configuration.
func (s *Store) CleanupAttributeCompression(relID uint32, attNum int16, keep []format.MethodID) error {
	col, ok := s.cols.Lookup(relID, attNum)
	if !ok {
		return fmt.Errorf("lookup failed for column %d of table %d: %w", attNum, relID, ErrIntegrity)
	}
	active := col.Compression

	// Pass 1: configuration rows.
	var doomed []ConfigID
	for row := range s.rows.ScanColumn(relID, attNum) {
		if row.ID == active {
			continue
		}
		if !slices.Contains(keep, row.Method) {
			doomed = append(doomed, row.ID)
		}
	}
	for _, id := range doomed {
		if err := s.rows.Delete(id); err != nil {
			return fmt.Errorf("delete attribute compression %d: %w", id, err)
		}
	}

	// Pass 2: edges where a removed configuration is the dependent.
	for _, id := range doomed {
		dep := ConfigRef(id)
		var stale []Edge
		for e := range s.deps.Find(EdgePattern{Dependent: &dep}) {
			stale = append(stale, e)
		}
		for _, e := range stale {
			if err := s.deps.DeleteEdge(e); err != nil {
				return fmt.Errorf("delete dependency of %d: %w", id, err)
			}
		}
	}

	// Pass 3: edges from the column itself to configurations — the only
	// trace of built-in usage.
	dep := TableColumnRef(relID, attNum)
	var stale []Edge
	for e := range s.deps.Find(EdgePattern{Dependent: &dep}) {
		if e.Referenced.Class != ClassConfig {
			continue
		}
		ref := ConfigID(e.Referenced.ID)
		if ref == active {
			continue
		}

		var m format.MethodID
		if sid, builtin := BuiltinStorageID(ref); builtin {
			var err error
			m, err = s.reg.MethodIDFromStorageID(sid)
			if err != nil {
				return err
			}
		} else if row, found := s.rows.Get(ref); found {
			m = row.Method
		} else {
			// Row already removed; the edge is dangling either way.
			stale = append(stale, e)
			continue
		}

		if !slices.Contains(keep, m) {
			stale = append(stale, e)
		}
	}
	for _, e := range stale {
		if err := s.deps.DeleteEdge(e); err != nil {
			return fmt.Errorf("delete dependency of column %d of table %d: %w", attNum, relID, err)
		}
	}

	return nil
}

// CheckCompressionMismatch verifies that two compression descriptors that
// must agree — e.g. across partitions of one logical column — actually do.
func CheckCompressionMismatch(a, b *ColumnCompression, columnName string) error {
	if a.MethodName != b.MethodName {
		return fmt.Errorf("column %q has a compression method conflict (%s versus %s): %w",
			columnName, a.MethodName, b.MethodName, ErrCompressionConflict)
	}
	if !a.Options.Equal(b.Options) {
		return fmt.Errorf("column %q has a compression options conflict ((%s) versus (%s)): %w",
			columnName, a.Options.Text(), b.Options.Text(), ErrCompressionConflict)
	}

	return nil
}

// MakeColumnCompression reconstructs the DDL-level clause describing a
// configuration, for DDL paths that copy a column's setting. Returns nil
// for InvalidConfigID.
func (s *Store) MakeColumnCompression(id ConfigID) (*ColumnCompression, error) {
	if !id.Valid() {
		return nil, nil
	}

	mid, err := s.methodIDFor(id)
	if err != nil {
		return nil, err
	}
	name, err := s.reg.Name(mid)
	if err != nil {
		return nil, err
	}

	cc := &ColumnCompression{MethodName: name}
	if !id.Builtin() {
		row, _ := s.rows.Get(id)
		cc.Options = slices.Clone(row.Options)
	}

	return cc, nil
}

// LinkBuiltinConfiguration records the dependency edge from a column to a
// built-in configuration — the only persistent trace that the column
// relies on that built-in method.
func (s *Store) LinkBuiltinConfiguration(col Column, id ConfigID) error {
	if !id.Builtin() {
		return fmt.Errorf("configuration %d is not built-in: %w", id, ErrIntegrity)
	}

	return s.deps.AddEdge(TableColumnRef(col.RelID, col.Num), ConfigRef(id))
}

// MethodFor resolves the codec bound to a configuration id. The storage
// engine's value read/write path calls this with a column's active id.
func (s *Store) MethodFor(id ConfigID) (compress.Method, error) {
	mid, err := s.methodIDFor(id)
	if err != nil {
		return nil, err
	}

	return s.reg.Codec(mid)
}

func (s *Store) methodIDFor(id ConfigID) (format.MethodID, error) {
	if sid, ok := BuiltinStorageID(id); ok {
		return s.reg.MethodIDFromStorageID(sid)
	}

	row, ok := s.rows.Get(id)
	if !ok {
		return format.MethodInvalid, fmt.Errorf("lookup failed for attribute compression %d: %w", id, ErrIntegrity)
	}

	return row.Method, nil
}

func (s *Store) builtinConfigID(id format.MethodID) (ConfigID, error) {
	sid, err := s.reg.StorageIDFromMethodID(id)
	if err != nil {
		return InvalidConfigID, err
	}
	if sid >= format.FirstRegisteredStorage {
		return InvalidConfigID, fmt.Errorf("method %v has no built-in configuration: %w", id, ErrIntegrity)
	}

	return BuiltinConfigID(sid), nil
}
