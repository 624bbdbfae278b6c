package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *PlayerState
	SetState(state *PlayerState) error
	Reset() *PlayerState

	// Catalog
	GetCatalog() *catalog.Catalog
	SetCatalog(cat *catalog.Catalog) error

	// Fishing
	CanStartActivity(target Activity) Check
	Cast(locationID string) (*CastResult, error)
	Reel() (*CatchResult, error)
	AbandonFishing() bool
	Sell(index int) (*SaleResult, error)
	SellAll() SaleSummary

	// Shop
	BuyRod(rodID string) (*Purchase, error)
	BuyBait(baitID string) (*Purchase, error)

	// Pets
	StartIncubation(eggID string) (*IncubatingEgg, error)
	Hatch(incubatorID string) (*HatchResult, error)
	Evolve(petID string) (*EvolveResult, error)
	Equip(petID string) error
	Unequip(petID string) error
	RemovePet(petID string) (*OwnedPet, error)
	SetLocked(petID string, locked bool) error

	// Collections
	PetCollection() CollectionProgress
	FishCollection() CollectionProgress

	// History
	GetHistory() []ActivityEntry
	GetLastAction() *ActivityEntry
}

// GameEngine implements the Engine interface for one player. It is not safe
// for concurrent use; callers serialise access.
type GameEngine struct {
	state   *PlayerState
	catalog *catalog.Catalog
	rng     Roller
	now     func() time.Time
}

// Option customises a GameEngine
type Option func(*GameEngine)

// WithRoller replaces the random source
func WithRoller(r Roller) Option {
	return func(e *GameEngine) { e.rng = r }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(e *GameEngine) { e.now = now }
}

// NewEngine creates a new game engine for playerID using the provided catalog
func NewEngine(cat *catalog.Catalog, playerID string, opts ...Option) (*GameEngine, error) {
	if err := catalog.Validate(cat); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		catalog: cat,
		state:   NewPlayerState(playerID, cat),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in catalog
func NewEngineWithDefaults(playerID string, opts ...Option) *GameEngine {
	engine, err := NewEngine(catalog.Default(), playerID, opts...)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return engine
}

// GetState returns the current player state
func (e *GameEngine) GetState() *PlayerState {
	return e.state
}

// SetState sets the player state (used for persistence loading)
func (e *GameEngine) SetState(state *PlayerState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	state.Normalize(e.catalog)
	e.state = state
	return nil
}

// Reset starts the player over, keeping the activity log
func (e *GameEngine) Reset() *PlayerState {
	prevHistory := e.state.History
	prevTotal := e.state.TotalActions

	e.state = NewPlayerState(e.state.PlayerID, e.catalog)
	e.state.History = prevHistory
	e.state.TotalActions = prevTotal
	e.state.AddActivity("reset", "", "", nil, e.now())

	return e.state
}

// GetCatalog returns the catalog the engine plays with
func (e *GameEngine) GetCatalog() *catalog.Catalog {
	return e.catalog
}

// SetCatalog switches catalogs and resets the player
func (e *GameEngine) SetCatalog(cat *catalog.Catalog) error {
	if err := catalog.Validate(cat); err != nil {
		return err
	}
	e.catalog = cat
	e.Reset()
	return nil
}

// CanStartActivity reports whether target may be started now
func (e *GameEngine) CanStartActivity(target Activity) Check {
	return e.state.CanStartActivity(e.catalog, target)
}

// Cast starts fishing at a location
func (e *GameEngine) Cast(locationID string) (*CastResult, error) {
	result, err := e.state.Cast(e.catalog, locationID, e.now())
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("wait ~%dms", result.EstimatedWaitMs)
	}
	e.state.AddActivity("cast", locationID, detail, err, e.now())
	return result, err
}

// Reel resolves the active fishing session
func (e *GameEngine) Reel() (*CatchResult, error) {
	location := e.state.Fishing.LocationID
	result, err := e.state.Reel(e.catalog, e.rng, e.now())
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("%s %.2fkg %s", result.Species.Name, result.Fish.Weight, result.Fish.Quality)
	}
	e.state.AddActivity("reel", location, detail, err, e.now())
	return result, err
}

// AbandonFishing ends the current session without a catch
func (e *GameEngine) AbandonFishing() bool {
	location := e.state.Fishing.LocationID
	if !e.state.AbandonFishing() {
		return false
	}
	e.state.AddActivity("abandon", location, "", nil, e.now())
	return true
}

// Sell sells the fish at index
func (e *GameEngine) Sell(index int) (*SaleResult, error) {
	result, err := e.state.Sell(e.catalog, index)
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("%s for %d coins", result.Fish.SpeciesID, result.Price)
	}
	e.state.AddActivity("sell", fmt.Sprint(index), detail, err, e.now())
	return result, err
}

// SellAll sells the whole fish inventory
func (e *GameEngine) SellAll() SaleSummary {
	summary := e.state.SellAll(e.catalog)
	e.state.AddActivity("sell_all", "", fmt.Sprintf("%d fish for %d coins", summary.Sold, summary.Earned), nil, e.now())
	return summary
}

// BuyRod buys or re-equips a rod
func (e *GameEngine) BuyRod(rodID string) (*Purchase, error) {
	result, err := e.state.BuyRod(e.catalog, rodID)
	e.state.AddActivity("buy_rod", rodID, purchaseDetail(result), err, e.now())
	return result, err
}

// BuyBait buys a fresh stack of bait
func (e *GameEngine) BuyBait(baitID string) (*Purchase, error) {
	result, err := e.state.BuyBait(e.catalog, baitID)
	e.state.AddActivity("buy_bait", baitID, purchaseDetail(result), err, e.now())
	return result, err
}

// StartIncubation buys an egg and starts incubating it
func (e *GameEngine) StartIncubation(eggID string) (*IncubatingEgg, error) {
	result, err := e.state.StartIncubation(e.catalog, eggID, e.now())
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("incubator %s", result.ID)
	}
	e.state.AddActivity("buy_egg", eggID, detail, err, e.now())
	return result, err
}

// Hatch opens a ready egg
func (e *GameEngine) Hatch(incubatorID string) (*HatchResult, error) {
	result, err := e.state.Hatch(e.catalog, incubatorID, e.rng, e.now())
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("%s %s power %d", result.Pet.Variant, result.Species.Name, result.Pet.Power)
	}
	e.state.AddActivity("hatch", incubatorID, detail, err, e.now())
	return result, err
}

// Evolve evolves a pet
func (e *GameEngine) Evolve(petID string) (*EvolveResult, error) {
	result, err := e.state.Evolve(e.catalog, petID)
	detail := ""
	if err == nil {
		detail = fmt.Sprintf("%s -> %s", result.FromSpecies, result.ToSpecies)
	}
	e.state.AddActivity("evolve", petID, detail, err, e.now())
	return result, err
}

// Equip adds a pet to the equip set
func (e *GameEngine) Equip(petID string) error {
	err := e.state.Equip(petID)
	e.state.AddActivity("equip", petID, "", err, e.now())
	return err
}

// Unequip removes a pet from the equip set
func (e *GameEngine) Unequip(petID string) error {
	err := e.state.Unequip(petID)
	e.state.AddActivity("unequip", petID, "", err, e.now())
	return err
}

// RemovePet releases a pet
func (e *GameEngine) RemovePet(petID string) (*OwnedPet, error) {
	pet, err := e.state.RemovePet(petID)
	e.state.AddActivity("release", petID, "", err, e.now())
	return pet, err
}

// SetLocked locks or unlocks a pet
func (e *GameEngine) SetLocked(petID string, locked bool) error {
	err := e.state.SetLocked(petID, locked)
	action := "unlock"
	if locked {
		action = "lock"
	}
	e.state.AddActivity(action, petID, "", err, e.now())
	return err
}

// PetCollection reports pet discovery progress
func (e *GameEngine) PetCollection() CollectionProgress {
	return e.state.PetCollection(e.catalog)
}

// FishCollection reports fish discovery progress
func (e *GameEngine) FishCollection() CollectionProgress {
	return e.state.FishCollection(e.catalog)
}

// GetHistory returns the activity log
func (e *GameEngine) GetHistory() []ActivityEntry {
	return e.state.History
}

// GetLastAction returns the most recent activity, or nil if none
func (e *GameEngine) GetLastAction() *ActivityEntry {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

func purchaseDetail(p *Purchase) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d coins", p.Price)
}
