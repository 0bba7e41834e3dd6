// Package sqlite provides a SQLite-based implementation of driven.TweetStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Tweets, merged characters and their
// selected tweets share a single database connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files;
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.corpusforge/data/corpus.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
