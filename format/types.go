package format

type (
	// MethodID is the stable one-byte identity of a compression method.
	// It is what catalog rows and DDL-level requests refer to.
	MethodID uint8

	// StorageID is the compact identifier recorded in stored value framing.
	// Built-in methods own the low range; registered methods are assigned
	// the next free value starting at FirstRegisteredStorage.
	StorageID uint8

	// StorageMode describes how a column stores out-of-line values.
	StorageMode uint8
)

const (
	MethodInvalid MethodID = 0x00 // MethodInvalid means "no compression configured".
	MethodLZ4     MethodID = 'l'  // MethodLZ4 is the built-in LZ4 method.
	MethodZstd    MethodID = 'z'  // MethodZstd is the built-in Zstandard method.

	StorageLZ4  StorageID = 0x0 // StorageLZ4 is the framing tag for LZ4.
	StorageZstd StorageID = 0x1 // StorageZstd is the framing tag for Zstandard.

	// FirstRegisteredStorage is the first framing tag available to
	// registered (non-built-in) methods.
	FirstRegisteredStorage StorageID = 0x8
)

const (
	StoragePlain    StorageMode = iota // in-line, never compressed
	StorageMain                        // in-line preferred, compressible
	StorageExternal                    // out-of-line, uncompressed
	StorageExtended                    // out-of-line, compressible
)

// Valid reports whether the method id denotes an actual method.
func (id MethodID) Valid() bool {
	return id != MethodInvalid
}

// Compressible reports whether values of a column with this storage mode may
// carry a compression configuration. Plain storage never compresses; external
// storage still gets a configuration so compression can start as soon as the
// mode changes.
func (m StorageMode) Compressible() bool {
	return m != StoragePlain
}

func (id MethodID) String() string {
	switch id {
	case MethodInvalid:
		return "invalid"
	case MethodLZ4:
		return "lz4"
	case MethodZstd:
		return "zstd"
	default:
		return "method(" + string(rune(id)) + ")"
	}
}

func (m StorageMode) String() string {
	switch m {
	case StoragePlain:
		return "plain"
	case StorageMain:
		return "main"
	case StorageExternal:
		return "external"
	case StorageExtended:
		return "extended"
	default:
		return "unknown"
	}
}
