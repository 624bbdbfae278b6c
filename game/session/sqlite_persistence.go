package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/wricardo/critter-catch/game/service"
	_ "modernc.org/sqlite"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id               TEXT PRIMARY KEY,
	catalog_id       TEXT NOT NULL,
	created_at       INTEGER NOT NULL,
	last_accessed_at INTEGER NOT NULL,
	state            TEXT NOT NULL
)`

// SQLitePersistence implements SessionPersistence on a single SQLite
// database. Player state is stored as a JSON document per session.
type SQLitePersistence struct {
	db             *sql.DB
	catalogManager service.CatalogManager
}

// NewSQLitePersistence opens (creating if needed) the database at path
func NewSQLitePersistence(path string, catalogManager service.CatalogManager) (*SQLitePersistence, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sessionsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &SQLitePersistence{db: db, catalogManager: catalogManager}, nil
}

// Close closes the database handle
func (sp *SQLitePersistence) Close() error {
	if sp == nil || sp.db == nil {
		return nil
	}
	return sp.db.Close()
}

// Save upserts a session row
func (sp *SQLitePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := snapshot(session)
	state, err := json.Marshal(data.PlayerState)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %w", err)
	}

	_, err = sp.db.Exec(`
INSERT INTO sessions (id, catalog_id, created_at, last_accessed_at, state)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	catalog_id = excluded.catalog_id,
	last_accessed_at = excluded.last_accessed_at,
	state = excluded.state`,
		strings.ToLower(data.ID), data.CatalogID, toMillis(data.CreatedAt), toMillis(data.LastAccessedAt), string(state))
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", data.ID, err)
	}
	return nil
}

// Load reads a session row and rebuilds its engine
func (sp *SQLitePersistence) Load(id string) (*service.Session, error) {
	var (
		data                  PersistedSessionData
		createdAt, accessedAt int64
		state                 string
	)
	row := sp.db.QueryRow(`SELECT id, catalog_id, created_at, last_accessed_at, state FROM sessions WHERE id = ?`, strings.ToLower(id))
	if err := row.Scan(&data.ID, &data.CatalogID, &createdAt, &accessedAt, &state); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	data.CreatedAt = fromMillis(createdAt)
	data.LastAccessedAt = fromMillis(accessedAt)

	if err := json.Unmarshal([]byte(state), &data.PlayerState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player state: %w", err)
	}

	return restore(data, sp.catalogManager)
}

// Delete removes a session row
func (sp *SQLitePersistence) Delete(id string) error {
	res, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?`, strings.ToLower(id))
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (sp *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := sp.db.Query(`SELECT id FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists checks if a session row exists
func (sp *SQLitePersistence) Exists(id string) bool {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, strings.ToLower(id)).Scan(&one)
	return err == nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
