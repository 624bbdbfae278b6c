package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
)

// ErrCatalogNotFound is returned when a session asks for a catalog that does not exist
var ErrCatalogNotFound = errors.New("catalog not found")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	catalogs CatalogManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, catalogs CatalogManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		catalogs: catalogs,
	}
}

// CreateSession creates a new player session
func (s *gameServiceImpl) CreateSession(ctx context.Context, catalogName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalogID := catalogName
	var cat *catalog.Catalog
	if catalogName != "" {
		loaded, err := s.catalogs.LoadCatalog(catalogName)
		if err != nil {
			if errors.Is(err, ErrCatalogNotFound) {
				return nil, s.catalogNotFound(catalogName)
			}
			return nil, fmt.Errorf("failed to load catalog %s: %w", catalogName, err)
		}
		cat = loaded
	} else {
		cat = s.catalogs.GetDefault()
		catalogID = s.catalogs.DefaultID()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", catalogID, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

func (s *gameServiceImpl) catalogNotFound(name string) error {
	available, err := s.catalogs.ListCatalogs()
	if err == nil && len(available) > 0 {
		ids := make([]string, 0, len(available))
		for _, info := range available {
			ids = append(ids, info.CatalogID)
		}
		if suggestion := catalog.Suggest(name, ids); suggestion != "" {
			return fmt.Errorf("%w: '%s'. Did you mean '%s'? Available catalogs: %v", ErrCatalogNotFound, name, suggestion, ids)
		}
		return fmt.Errorf("%w: '%s'. Available catalogs: %v", ErrCatalogNotFound, name, ids)
	}
	return fmt.Errorf("%w: '%s'. Use /api/catalogs to list available catalogs", ErrCatalogNotFound, name)
}

// GetSession retrieves session information
// Touching the session writes LastAccessedAt, so it takes the write lock.
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Reset starts the player of a session over
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.Reset()
	s.persist(sessionID, "reset")
	return state.Clone(), nil
}

// SyncSessions persists every live session. Actions are blocked while it runs.
func (s *gameServiceImpl) SyncSessions(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	failed := 0
	for _, sess := range s.sessions.List() {
		if err := s.sessions.Save(sess.ID); err != nil {
			log.Printf("Warning: Failed to sync session %s: %v", sess.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to sync %d sessions", failed)
	}
	return nil
}

// CleanupSessions evicts sessions idle for longer than maxAge
func (s *gameServiceImpl) CleanupSessions(ctx context.Context, maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.CleanupExpiredSessions(maxAge)
}

// GetPlayerState retrieves the current player state
func (s *gameServiceImpl) GetPlayerState(ctx context.Context, sessionID string) (*engine.PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState().Clone(), nil
}

// CanStart reports whether an activity may be started without starting it
func (s *gameServiceImpl) CanStart(ctx context.Context, sessionID string, target engine.Activity) (*engine.Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	check := sess.Engine.CanStartActivity(target)
	return &check, nil
}

// GetCollection reports discovery progress for fish and pets
func (s *gameServiceImpl) GetCollection(ctx context.Context, sessionID string) (*CollectionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return &CollectionInfo{
		Fish: sess.Engine.FishCollection(),
		Pets: sess.Engine.PetCollection(),
	}, nil
}

// GetHistory returns paginated activity history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	if opts.Action != "" {
		filtered := make([]engine.ActivityEntry, 0, len(history))
		for _, entry := range history {
			if strings.EqualFold(entry.Action, opts.Action) {
				filtered = append(filtered, entry)
			}
		}
		history = filtered
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	entries := []engine.ActivityEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			entries = append(entries, history[i])
		}
	} else if start < total {
		entries = append(entries, history[start:end]...)
	}

	return &HistoryResponse{
		Entries:      entries,
		TotalEntries: total,
		TotalActions: sess.Engine.GetState().TotalActions,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// Cast starts fishing at a location
func (s *gameServiceImpl) Cast(ctx context.Context, sessionID, locationID string) (*ActionResult, error) {
	return s.act(sessionID, "cast", func(sess *Session, result *ActionResult) error {
		cast, err := sess.Engine.Cast(locationID)
		if err != nil {
			return err
		}
		result.Cast = cast
		result.Message = fmt.Sprintf("Line cast at %s. A bite is expected in about %.1fs", locationID, float64(cast.EstimatedWaitMs)/1000)
		result.Events = append(result.Events, newEvent("cast", result.Message))
		return nil
	})
}

// Reel resolves the active fishing session
func (s *gameServiceImpl) Reel(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "reel", func(sess *Session, result *ActionResult) error {
		catch, err := sess.Engine.Reel()
		if err != nil {
			return err
		}
		result.Catch = catch
		result.Message = fmt.Sprintf("Caught a %s %s (%.2fkg), worth %d coins", catch.Fish.Quality, catch.Species.Name, catch.Fish.Weight, catch.Value)
		result.Events = append(result.Events, catchEvents(catch, sess.Catalog)...)
		return nil
	})
}

// AbandonFishing ends the active fishing session without a catch
func (s *gameServiceImpl) AbandonFishing(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "abandon", func(sess *Session, result *ActionResult) error {
		if !sess.Engine.AbandonFishing() {
			return &engine.Error{Code: engine.CodeNotFishing, Message: "Not currently fishing"}
		}
		result.Message = "Reeled in an empty line"
		return nil
	})
}

// SellFish sells one fish by inventory index
func (s *gameServiceImpl) SellFish(ctx context.Context, sessionID string, index int) (*ActionResult, error) {
	return s.act(sessionID, "sell", func(sess *Session, result *ActionResult) error {
		sale, err := sess.Engine.Sell(index)
		if err != nil {
			return err
		}
		result.Sale = sale
		result.Message = fmt.Sprintf("Sold %s for %d coins", sale.Fish.SpeciesID, sale.Price)
		result.Events = append(result.Events, newEvent("sale", result.Message))
		return nil
	})
}

// SellAll sells the whole fish inventory
func (s *gameServiceImpl) SellAll(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.act(sessionID, "sell_all", func(sess *Session, result *ActionResult) error {
		summary := sess.Engine.SellAll()
		result.Summary = &summary
		result.Message = fmt.Sprintf("Sold %d fish for %d coins", summary.Sold, summary.Earned)
		if summary.Sold > 0 {
			result.Events = append(result.Events, newEvent("sale", result.Message))
		}
		return nil
	})
}

// BuyRod buys or re-equips a rod
func (s *gameServiceImpl) BuyRod(ctx context.Context, sessionID, rodID string) (*ActionResult, error) {
	return s.act(sessionID, "buy_rod", func(sess *Session, result *ActionResult) error {
		purchase, err := sess.Engine.BuyRod(rodID)
		if err != nil {
			return err
		}
		result.Purchase = purchase
		result.Message = fmt.Sprintf("Equipped %s", rodID)
		if purchase.Price > 0 {
			result.Message = fmt.Sprintf("Bought and equipped %s for %d coins", rodID, purchase.Price)
		}
		result.Events = append(result.Events, newEvent("purchase", result.Message))
		return nil
	})
}

// BuyBait buys a fresh stack of bait
func (s *gameServiceImpl) BuyBait(ctx context.Context, sessionID, baitID string) (*ActionResult, error) {
	return s.act(sessionID, "buy_bait", func(sess *Session, result *ActionResult) error {
		purchase, err := sess.Engine.BuyBait(baitID)
		if err != nil {
			return err
		}
		result.Purchase = purchase
		result.Message = fmt.Sprintf("Bought %s for %d coins", baitID, purchase.Price)
		result.Events = append(result.Events, newEvent("purchase", result.Message))
		return nil
	})
}

// BuyEgg buys an egg and places it in an incubator
func (s *gameServiceImpl) BuyEgg(ctx context.Context, sessionID, eggID string) (*ActionResult, error) {
	return s.act(sessionID, "buy_egg", func(sess *Session, result *ActionResult) error {
		egg, err := sess.Engine.StartIncubation(eggID)
		if err != nil {
			return err
		}
		result.Egg = egg
		result.Message = fmt.Sprintf("%s is incubating, ready in %s", eggID, egg.Duration())
		result.Events = append(result.Events, newEvent("egg_started", result.Message))
		return nil
	})
}

// Hatch opens a ready egg
func (s *gameServiceImpl) Hatch(ctx context.Context, sessionID, incubatorID string) (*ActionResult, error) {
	return s.act(sessionID, "hatch", func(sess *Session, result *ActionResult) error {
		hatch, err := sess.Engine.Hatch(incubatorID)
		if err != nil {
			return err
		}
		result.Hatch = hatch
		result.Message = fmt.Sprintf("Hatched a %s %s with power %d", hatch.Pet.Variant, hatch.Species.Name, hatch.Pet.Power)
		result.Events = append(result.Events, newEvent("hatch", result.Message))
		if hatch.IsNew {
			result.Events = append(result.Events, newEvent("discovery", fmt.Sprintf("New pet discovered: %s", hatch.Species.Name)))
		}
		return nil
	})
}

// Evolve evolves a pet into its next form
func (s *gameServiceImpl) Evolve(ctx context.Context, sessionID, petID string) (*ActionResult, error) {
	return s.act(sessionID, "evolve", func(sess *Session, result *ActionResult) error {
		evolution, err := sess.Engine.Evolve(petID)
		if err != nil {
			return err
		}
		result.Evolution = evolution
		result.Message = fmt.Sprintf("%s evolved into %s, power %d -> %d", evolution.FromSpecies, evolution.ToSpecies, evolution.PowerBefore, evolution.PowerAfter)
		result.Events = append(result.Events, newEvent("evolve", result.Message))
		if evolution.IsNew {
			result.Events = append(result.Events, newEvent("discovery", fmt.Sprintf("New pet discovered: %s", evolution.ToSpecies)))
		}
		return nil
	})
}

// Equip adds a pet to the equip set
func (s *gameServiceImpl) Equip(ctx context.Context, sessionID, petID string) (*ActionResult, error) {
	return s.act(sessionID, "equip", func(sess *Session, result *ActionResult) error {
		if err := sess.Engine.Equip(petID); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Equipped pet %s", petID)
		return nil
	})
}

// Unequip removes a pet from the equip set
func (s *gameServiceImpl) Unequip(ctx context.Context, sessionID, petID string) (*ActionResult, error) {
	return s.act(sessionID, "unequip", func(sess *Session, result *ActionResult) error {
		if err := sess.Engine.Unequip(petID); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Unequipped pet %s", petID)
		return nil
	})
}

// ReleasePet removes a pet from the collection
func (s *gameServiceImpl) ReleasePet(ctx context.Context, sessionID, petID string) (*ActionResult, error) {
	return s.act(sessionID, "release", func(sess *Session, result *ActionResult) error {
		pet, err := sess.Engine.RemovePet(petID)
		if err != nil {
			return err
		}
		result.Pet = pet
		result.Message = fmt.Sprintf("Released %s", pet.SpeciesID)
		result.Events = append(result.Events, newEvent("release", result.Message))
		return nil
	})
}

// SetPetLocked locks or unlocks a pet
func (s *gameServiceImpl) SetPetLocked(ctx context.Context, sessionID, petID string, locked bool) (*ActionResult, error) {
	action := "unlock"
	if locked {
		action = "lock"
	}
	return s.act(sessionID, action, func(sess *Session, result *ActionResult) error {
		if err := sess.Engine.SetLocked(petID, locked); err != nil {
			return err
		}
		result.Message = fmt.Sprintf("Pet %s %sed", petID, action)
		return nil
	})
}

// ListCatalogs returns available catalogs
func (s *gameServiceImpl) ListCatalogs(ctx context.Context) ([]*CatalogInfo, error) {
	return s.catalogs.ListCatalogs()
}

// LoadCatalog loads a specific catalog
func (s *gameServiceImpl) LoadCatalog(ctx context.Context, catalogName string) (*catalog.Catalog, error) {
	return s.catalogs.LoadCatalog(catalogName)
}

// SaveCatalog saves a catalog to disk
func (s *gameServiceImpl) SaveCatalog(ctx context.Context, catalogName string, cat *catalog.Catalog) error {
	return s.catalogs.SaveCatalog(catalogName, cat)
}

// act runs one player action under the service lock. Game rejections become
// an unsuccessful result; anything else is returned as an error.
func (s *gameServiceImpl) act(sessionID, action string, fn func(sess *Session, result *ActionResult) error) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &ActionResult{Action: action, Events: []GameEvent{}}
	if err := fn(sess, result); err != nil {
		var gameErr *engine.Error
		if !errors.As(err, &gameErr) {
			return nil, err
		}
		result.Success = false
		result.Code = gameErr.Code
		result.Message = gameErr.Message
		result.State = sess.Engine.GetState().Clone()
		return result, nil
	}

	result.Success = true
	result.State = sess.Engine.GetState().Clone()
	s.persist(sessionID, action)
	return result, nil
}

func (s *gameServiceImpl) persist(sessionID, action string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after %s: %v", sessionID, action, err)
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		CatalogID:      sess.CatalogID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		PlayerState:    sess.Engine.GetState().Clone(),
	}
}

func newEvent(kind, message string) GameEvent {
	return GameEvent{Type: kind, Message: message, Timestamp: time.Now()}
}

// catchEvents turns a catch into the events clients display
func catchEvents(catch *engine.CatchResult, cat *catalog.Catalog) []GameEvent {
	events := []GameEvent{
		newEvent("catch", fmt.Sprintf("Caught %s (%s, %.2fkg)", catch.Species.Name, catch.Species.Rarity, catch.Fish.Weight)),
	}
	if catch.IsNewDiscovery {
		events = append(events, newEvent("discovery", fmt.Sprintf("New fish discovered: %s", catch.Species.Name)))
	}
	if catch.IsPersonalRecord && !catch.IsNewDiscovery {
		events = append(events, newEvent("personal_record", fmt.Sprintf("New personal best for %s: %.2fkg", catch.Species.Name, catch.Fish.Weight)))
	}
	if catch.LevelUp.Leveled {
		events = append(events, newEvent("level_up", fmt.Sprintf("Reached level %d", catch.LevelUp.To)))
	}
	for _, up := range catch.PetLevelUps {
		events = append(events, newEvent("pet_level_up", fmt.Sprintf("Pet %s reached level %d", up.PetID, up.To)))
	}
	if catch.BaitUsed != "" && catch.BaitRemaining == 0 {
		name := catch.BaitUsed
		if bait, ok := cat.Bait(catch.BaitUsed); ok {
			name = bait.Name
		}
		events = append(events, newEvent("bait_depleted", fmt.Sprintf("Out of %s", name)))
	}
	return events
}
