// Package sqlite provides a SQLite-backed applicant source.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files;
// applied versions are recorded in schema_migrations.
//
// # Persistence
//
// Save rewrites both tables inside a single transaction, so a failed save
// leaves the previous records in place.
package sqlite
