// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the store interfaces
// through a single database connection:
//
//   - MemoryStore: Document and context handle persistence
//   - SourceStore: Ingestion source configuration persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Documents and context handles are immutable after
// insert; the schema enforces deduplication with a UNIQUE constraint on the
// document text hash, and the one-to-one document/handle pairing with a
// UNIQUE constraint on the handle's document reference.
//
// # Data Location
//
// By default, the database is stored at ~/.memora/data/memory.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
