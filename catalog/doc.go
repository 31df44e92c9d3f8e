// Package catalog manages attribute compression metadata: which compression
// method, with which options, applies to each table column.
//
// # Model
//
// A configuration binds one (table, column) to a (method, options) pair and
// carries a unique ConfigID. Multiple configurations may coexist for one
// column — preserved-but-inactive ones keep old values readable — but
// exactly one is active at a time, recorded on the column descriptor owned
// by the host schema catalog. Identifiers below FirstNormalConfigID denote
// implicit built-in configurations that are never persisted or deleted.
//
// Dependency edges record two facts the rows cannot: that a column relies
// on a built-in configuration (the edge is the only trace of it), and that
// a persisted configuration references its method (so cleanup can remove
// rows and edges together).
//
// # Operations
//
// Store.CreateAttributeCompression resolves a method name, searches the
// column's existing configurations for an identical one to reuse, decides
// whether stored values must be rewritten based on the PRESERVE list, and
// persists a new row only when nothing matched.
// Store.CleanupAttributeCompression drops the rows and edges a compression
// change left unreachable, always sparing the active configuration.
// Store.ColumnCompressionHistory answers "which methods were ever used on
// this column".
//
// # Errors
//
// ErrUnknownMethod, ErrCannotPreserve and ErrCompressionConflict are user
// input errors carrying the offending method and column names. ErrIntegrity
// marks broken internal invariants; it is fatal, never caught or retried,
// and aborts the enclosing unit of work.
//
// # Concurrency
//
// All operations run inside the host engine's transactional unit of work
// and rely on its lock manager to serialize DDL per column. The store adds
// no locking and no optimistic reuse detection of its own.
package catalog
