package session

import (
	"fmt"
	"time"

	"github.com/wricardo/critter-catch/game/engine"
	"github.com/wricardo/critter-catch/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. Only the player state
// is saved; the engine is rebuilt from the catalog on load.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	CatalogID      string              `json:"catalog_id"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	PlayerState    *engine.PlayerState `json:"player_state"`
}

func snapshot(session *service.Session) PersistedSessionData {
	return PersistedSessionData{
		ID:             session.ID,
		CatalogID:      session.CatalogID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		PlayerState:    session.Engine.GetState(),
	}
}

// restore rebuilds a live session from stored data
func restore(data PersistedSessionData, catalogs service.CatalogManager) (*service.Session, error) {
	catalogID := data.CatalogID
	if catalogID == "" {
		catalogID = catalogs.DefaultID()
	}

	cat, err := catalogs.LoadCatalog(catalogID)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog '%s': %w", catalogID, err)
	}

	gameEngine, err := engine.NewEngine(cat, data.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if data.PlayerState != nil {
		if err := gameEngine.SetState(data.PlayerState); err != nil {
			return nil, fmt.Errorf("failed to set player state: %w", err)
		}
	}

	return &service.Session{
		ID:             data.ID,
		Engine:         gameEngine,
		Catalog:        cat,
		CatalogID:      catalogID,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
