package service

import (
	"time"

	"github.com/wricardo/critter-catch/game/engine"
)

// SessionInfo provides information about a player session
type SessionInfo struct {
	ID             string              `json:"id"`
	CatalogID      string              `json:"catalog_id"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	PlayerState    *engine.PlayerState `json:"player_state"`
}

// ActionResult is the outcome of one player action. A rejected action has
// Success false with the rejection Code and Message; State is always the
// player's state after the call.
type ActionResult struct {
	Success bool                `json:"success"`
	Action  string              `json:"action"`
	Code    engine.Code         `json:"code,omitempty"`
	Message string              `json:"message"`
	State   *engine.PlayerState `json:"state"`
	Events  []GameEvent         `json:"events,omitempty"`

	// Exactly one payload is set on success, matching Action
	Cast      *engine.CastResult    `json:"cast,omitempty"`
	Catch     *engine.CatchResult   `json:"catch,omitempty"`
	Sale      *engine.SaleResult    `json:"sale,omitempty"`
	Summary   *engine.SaleSummary   `json:"summary,omitempty"`
	Purchase  *engine.Purchase      `json:"purchase,omitempty"`
	Egg       *engine.IncubatingEgg `json:"egg,omitempty"`
	Hatch     *engine.HatchResult   `json:"hatch,omitempty"`
	Evolution *engine.EvolveResult  `json:"evolution,omitempty"`
	Pet       *engine.OwnedPet      `json:"pet,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"` // "catch", "discovery", "personal_record", "level_up", "pet_level_up", "bait_depleted", "hatch", "evolve", ...
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CollectionInfo reports discovery progress for both loops
type CollectionInfo struct {
	Fish engine.CollectionProgress `json:"fish"`
	Pets engine.CollectionProgress `json:"pets"`
}

// HistoryOptions configures activity history retrieval
type HistoryOptions struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Order  string `json:"order"`  // "asc" or "desc"
	Action string `json:"action"` // only entries with this action when set
}

// HistoryResponse contains paginated activity history
type HistoryResponse struct {
	Entries      []engine.ActivityEntry `json:"entries"`
	TotalEntries int                    `json:"total_entries"`
	TotalActions int                    `json:"total_actions"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	TotalPages   int                    `json:"total_pages"`
	HasNext      bool                   `json:"has_next"`
	HasPrevious  bool                   `json:"has_previous"`
}

// CatalogInfo provides information about a catalog file
type CatalogInfo struct {
	Filename    string `json:"filename"`
	CatalogID   string `json:"catalog_id"` // The identifier to use for session creation
	Name        string `json:"name"`       // Display name
	Description string `json:"description"`
	Format      string `json:"format"` // "json", "yaml" or "builtin"
	Locations   int    `json:"locations"`
	FishSpecies int    `json:"fish_species"`
	PetSpecies  int    `json:"pet_species"`
	Eggs        int    `json:"eggs"`
}
