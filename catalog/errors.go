package catalog

import "errors"

var (
	// ErrUnknownMethod reports a compression method name that is not
	// registered. User input error: the DDL caller picked a bad name.
	ErrUnknownMethod = errors.New("unknown compression method")

	// ErrCannotPreserve reports a PRESERVE list entry naming a method that
	// was never used on the column. User input error.
	ErrCannotPreserve = errors.New("compression method cannot be preserved")

	// ErrCompressionConflict reports two compression descriptors that must
	// agree (e.g. across partitions of one logical column) but do not.
	ErrCompressionConflict = errors.New("compression settings conflict")

	// ErrIntegrity reports a broken internal invariant: a built-in
	// configuration reached a delete path, a bulk-load identifier did not
	// match, a descriptor lookup failed for an id the catalog handed out.
	// Fatal: it aborts the enclosing unit of work and is never retried.
	ErrIntegrity = errors.New("attribute compression integrity violation")
)
