package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends for session persistence
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Settings are the process-level knobs read from the environment. Game
// tunables live in catalogs, not here.
type Settings struct {
	Host       string `env:"HOST"        envDefault:"localhost"`
	Port       int    `env:"PORT"        envDefault:"8080"`
	CatalogDir string `env:"CATALOG_DIR" envDefault:"catalogs"`

	Store       string `env:"SESSION_STORE" envDefault:"file"`
	SessionsDir string `env:"SESSIONS_DIR"  envDefault:"sessions"`
	DBPath      string `env:"SESSIONS_DB"   envDefault:"sessions.db"`

	SessionTTL      time.Duration `env:"SESSION_TTL"              envDefault:"24h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h"`
	SyncInterval    time.Duration `env:"SESSION_SYNC_INTERVAL"    envDefault:"30s"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// LoadSettings parses Settings from the environment
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// Validate checks values env tags cannot express
func (s Settings) Validate() error {
	switch s.Store {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unknown session store %q (want %s, %s or %s)", s.Store, StoreFile, StoreSQLite, StoreMemory)
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range", s.Port)
	}
	if s.SessionTTL <= 0 || s.CleanupInterval <= 0 || s.SyncInterval <= 0 {
		return fmt.Errorf("session ttl and intervals must be positive")
	}
	return nil
}
