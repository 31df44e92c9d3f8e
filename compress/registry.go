package compress

import (
	"fmt"
	"iter"
	"sync"

	"github.com/quarkdb/colcomp/format"
)

// Registry maps a method's stable identifier, its storage-level framing
// tag, and its name to the Method implementation to invoke.
//
// Registration is append-only for the lifetime of the process: a method id
// or name can never be replaced or removed, so storage ids handed out to the
// framing layer stay valid as long as the process runs.
type Registry struct {
	mu          sync.RWMutex
	methods     map[format.MethodID]Method
	byName      map[string]format.MethodID
	byStorage   map[format.StorageID]format.MethodID
	storageOf   map[format.MethodID]format.StorageID
	nextStorage format.StorageID
}

// NewRegistry creates a registry pre-populated with the built-in methods
// (lz4 and zstd) on their reserved storage ids.
func NewRegistry() *Registry {
	r := &Registry{
		methods:     make(map[format.MethodID]Method),
		byName:      make(map[string]format.MethodID),
		byStorage:   make(map[format.StorageID]format.MethodID),
		storageOf:   make(map[format.MethodID]format.StorageID),
		nextStorage: format.FirstRegisteredStorage,
	}
	r.install(format.MethodLZ4, format.StorageLZ4, LZ4{})
	r.install(format.MethodZstd, format.StorageZstd, Zstd{})

	return r
}

// DefaultRegistry is the process-wide registry used when a Store is built
// without an explicit one.
var DefaultRegistry = NewRegistry()

func (r *Registry) install(id format.MethodID, sid format.StorageID, m Method) {
	r.methods[id] = m
	r.byName[m.Name()] = id
	r.byStorage[sid] = id
	r.storageOf[id] = sid
}

// Register adds a non-built-in method under the given stable id and assigns
// it the next free storage id. It fails if the id or the method's name is
// already taken, or if the id collides with the built-in range semantics
// (format.MethodInvalid).
func (r *Registry) Register(id format.MethodID, m Method) (format.StorageID, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("register %q: %w", m.Name(), ErrInvalidMethod)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[id]; ok {
		return 0, fmt.Errorf("register %q: method id %v already registered", m.Name(), id)
	}
	if _, ok := r.byName[m.Name()]; ok {
		return 0, fmt.Errorf("register %q: method name already registered", m.Name())
	}

	sid := r.nextStorage
	r.nextStorage++
	r.install(id, sid, m)

	return sid, nil
}

// ByName resolves a method name to its stable id and implementation.
// The boolean result is false when the name is not registered; the caller
// decides whether that is user error (an unknown name in DDL) or fatal.
func (r *Registry) ByName(name string) (format.MethodID, Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return format.MethodInvalid, nil, false
	}

	return id, r.methods[id], true
}

// Codec returns the implementation bound to a stable method id.
// Unknown ids fail with ErrInvalidMethod: ids come from trusted metadata,
// so a miss means the metadata is broken.
func (r *Registry) Codec(id format.MethodID) (Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[id]
	if !ok {
		return nil, fmt.Errorf("method id %v: %w", id, ErrInvalidMethod)
	}

	return m, nil
}

// Name returns the registered name for a stable method id.
func (r *Registry) Name(id format.MethodID) (string, error) {
	m, err := r.Codec(id)
	if err != nil {
		return "", err
	}

	return m.Name(), nil
}

// MethodIDFromStorageID maps a framing tag back to the stable method id.
// Fails with ErrInvalidMethod for unrecognized tags.
func (r *Registry) MethodIDFromStorageID(sid format.StorageID) (format.MethodID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byStorage[sid]
	if !ok {
		return format.MethodInvalid, fmt.Errorf("storage id %d: %w", sid, ErrInvalidMethod)
	}

	return id, nil
}

// StorageIDFromMethodID maps a stable method id to its framing tag.
// Fails with ErrInvalidMethod for unrecognized ids.
func (r *Registry) StorageIDFromMethodID(id format.MethodID) (format.StorageID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sid, ok := r.storageOf[id]
	if !ok {
		return 0, fmt.Errorf("method id %v: %w", id, ErrInvalidMethod)
	}

	return sid, nil
}

// Builtin reports whether the method's storage id lies in the reserved
// built-in range.
func (r *Registry) Builtin(id format.MethodID) bool {
	sid, err := r.StorageIDFromMethodID(id)

	return err == nil && sid < format.FirstRegisteredStorage
}

// Codecs iterates over all registered methods in unspecified order.
func (r *Registry) Codecs() iter.Seq2[format.MethodID, Method] {
	return func(yield func(format.MethodID, Method) bool) {
		r.mu.RLock()
		defer r.mu.RUnlock()

		for id, m := range r.methods {
			if !yield(id, m) {
				return
			}
		}
	}
}
