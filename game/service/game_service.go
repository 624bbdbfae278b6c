package service

import (
	"context"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, catalogName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) (*engine.PlayerState, error)
	SyncSessions(ctx context.Context) error
	CleanupSessions(ctx context.Context, maxAge time.Duration) int

	// Player State
	GetPlayerState(ctx context.Context, sessionID string) (*engine.PlayerState, error)
	CanStart(ctx context.Context, sessionID string, target engine.Activity) (*engine.Check, error)
	GetCollection(ctx context.Context, sessionID string) (*CollectionInfo, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Fishing
	Cast(ctx context.Context, sessionID, locationID string) (*ActionResult, error)
	Reel(ctx context.Context, sessionID string) (*ActionResult, error)
	AbandonFishing(ctx context.Context, sessionID string) (*ActionResult, error)
	SellFish(ctx context.Context, sessionID string, index int) (*ActionResult, error)
	SellAll(ctx context.Context, sessionID string) (*ActionResult, error)

	// Shop
	BuyRod(ctx context.Context, sessionID, rodID string) (*ActionResult, error)
	BuyBait(ctx context.Context, sessionID, baitID string) (*ActionResult, error)
	BuyEgg(ctx context.Context, sessionID, eggID string) (*ActionResult, error)

	// Pets
	Hatch(ctx context.Context, sessionID, incubatorID string) (*ActionResult, error)
	Evolve(ctx context.Context, sessionID, petID string) (*ActionResult, error)
	Equip(ctx context.Context, sessionID, petID string) (*ActionResult, error)
	Unequip(ctx context.Context, sessionID, petID string) (*ActionResult, error)
	ReleasePet(ctx context.Context, sessionID, petID string) (*ActionResult, error)
	SetPetLocked(ctx context.Context, sessionID, petID string, locked bool) (*ActionResult, error)

	// Catalogs
	ListCatalogs(ctx context.Context) ([]*CatalogInfo, error)
	LoadCatalog(ctx context.Context, catalogName string) (*catalog.Catalog, error)
	SaveCatalog(ctx context.Context, catalogName string, cat *catalog.Catalog) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, catalogID string, cat *catalog.Catalog) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id, catalogID string, cat *catalog.Catalog) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
	CleanupExpiredSessions(maxAge time.Duration) int
}

// CatalogManager handles catalog loading
type CatalogManager interface {
	LoadCatalog(name string) (*catalog.Catalog, error)
	ListCatalogs() ([]*CatalogInfo, error)
	GetDefault() *catalog.Catalog
	DefaultID() string
	SaveCatalog(name string, cat *catalog.Catalog) error
}

// Session represents an active player session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Catalog        *catalog.Catalog
	CatalogID      string
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
