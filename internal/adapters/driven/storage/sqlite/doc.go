// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - ConversationStore: Conversation and message persistence
//   - SearchStore: FTS5 full-text search over stored conversations
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. The full-text index is a standalone FTS5 table whose
// rowid mirrors conversations.id; it is updated inside the same transaction
// as the conversation row, so the two can never disagree.
//
// # Data Location
//
// By default, the database is stored at ~/.chatvault/data/conversations.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
