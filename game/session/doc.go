// Package session provides session management for Critter Catch.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Short session ID generation
//   - Session persistence to JSON files or SQLite
//   - Idle session eviction
//
// Core Types:
//
// Manager is the session manager that handles all session operations. Each
// session owns one game engine, playing one catalog, for one player whose id
// is the session id.
//
// Session Identifiers:
//
// Generated ids are 4 hex characters from crypto/rand. Callers may also pick
// their own id of up to 64 letters, digits, dashes or underscores. Lookups
// are case-insensitive.
//
// Persistence:
//
// A SessionPersistence stores the player state and catalog id of a session.
// Loading rebuilds the engine from the catalog, so catalogs must stay
// available under the same id. FilePersistence writes one JSON file per
// session; SQLitePersistence keeps one row per session in a sessions table.
//
// Usage:
//
//	store, err := session.NewSQLitePersistence("critter.db", catalogs)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(store)
//	if err := manager.LoadPersistedSessions(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
//
//	sess, err := manager.Create("", catalogs.DefaultID(), catalogs.GetDefault())
package session
