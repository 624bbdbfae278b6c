package main

import (
	"fmt"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/engine"
)

// Step is one API call the bot wants to make. Path is relative to the
// session, e.g. "/fishing/cast".
type Step struct {
	Action string
	Path   string
	Body   map[string]any
}

func (s Step) key() string {
	return fmt.Sprintf("%s %s %v", s.Action, s.Path, s.Body)
}

// Strategy picks the next step from the player's state. It grinds the best
// unlocked location, sells when the bag fills, upgrades gear when it can
// afford to and keeps the incubators busy.
type Strategy struct {
	cat     *catalog.Catalog
	reserve int // coins held back so bait stays affordable
	blocked map[string]bool
}

// NewStrategy creates a strategy for a catalog
func NewStrategy(cat *catalog.Catalog) *Strategy {
	reserve := 0
	for i, bait := range cat.Baits {
		if i == 0 || bait.Price < reserve {
			reserve = bait.Price
		}
	}
	return &Strategy{
		cat:     cat,
		reserve: reserve,
		blocked: make(map[string]bool),
	}
}

// Reject marks a step the server refused. It is skipped until Reset.
func (s *Strategy) Reject(step Step) {
	s.blocked[step.key()] = true
}

// Reset forgets rejections. The bot calls it after every catch since coins
// and level may have changed.
func (s *Strategy) Reset() {
	clear(s.blocked)
}

// Next returns the highest priority step that is not blocked. It reports
// false when there is nothing left to do.
func (s *Strategy) Next(state *engine.PlayerState, now time.Time) (Step, bool) {
	picks := []func(*engine.PlayerState, time.Time) (Step, bool){
		s.reel,
		s.hatch,
		s.sell,
		s.evolve,
		s.equip,
		s.upgradeRod,
		s.buyEgg,
		s.buyBait,
		s.cast,
	}
	for _, pick := range picks {
		if step, ok := pick(state, now); ok && !s.blocked[step.key()] {
			return step, true
		}
	}
	return Step{}, false
}

func (s *Strategy) reel(state *engine.PlayerState, _ time.Time) (Step, bool) {
	if !state.Fishing.Active {
		return Step{}, false
	}
	return Step{Action: "reel", Path: "/fishing/reel"}, true
}

func (s *Strategy) hatch(state *engine.PlayerState, now time.Time) (Step, bool) {
	ready := state.ReadyEggs(now)
	if len(ready) == 0 {
		return Step{}, false
	}
	return Step{Action: "hatch", Path: "/incubators/" + ready[0] + "/hatch"}, true
}

func (s *Strategy) sell(state *engine.PlayerState, _ time.Time) (Step, bool) {
	if !state.Fishing.Inventory.Full() {
		return Step{}, false
	}
	return Step{Action: "sell_all", Path: "/fishing/sell-all"}, true
}

func (s *Strategy) evolve(state *engine.PlayerState, _ time.Time) (Step, bool) {
	for _, pet := range state.Pets.Inventory.Items() {
		species, ok := s.cat.Pet(pet.SpeciesID)
		if ok && species.CanEvolve() && pet.Level >= species.EvolveLevel {
			return Step{Action: "evolve", Path: "/pets/" + pet.ID + "/evolve"}, true
		}
	}
	return Step{}, false
}

// equip fills a free equip slot with the strongest idle pet
func (s *Strategy) equip(state *engine.PlayerState, _ time.Time) (Step, bool) {
	if state.Pets.Equipped.Full() {
		return Step{}, false
	}
	var best *engine.OwnedPet
	for _, pet := range state.Pets.Inventory.Items() {
		if pet.Equipped {
			continue
		}
		if best == nil || pet.Power > best.Power {
			best = &pet
		}
	}
	if best == nil {
		return Step{}, false
	}
	return Step{Action: "equip", Path: "/pets/" + best.ID + "/equip"}, true
}

func rodScore(rod *catalog.Rod) float64 {
	return rod.LuckBonus + rod.SpeedBonus
}

func (s *Strategy) upgradeRod(state *engine.PlayerState, _ time.Time) (Step, bool) {
	current := 0.0
	if rod, ok := s.cat.Rod(state.Fishing.RodID); ok {
		current = rodScore(rod)
	}

	var best *catalog.Rod
	for i := range s.cat.Rods {
		rod := &s.cat.Rods[i]
		if state.OwnsRod(rod.ID) || rod.MinLevel > state.Level || rod.Price > state.Coins-s.reserve {
			continue
		}
		if rodScore(rod) > current && (best == nil || rodScore(rod) > rodScore(best)) {
			best = rod
		}
	}
	if best == nil {
		return Step{}, false
	}
	return Step{Action: "buy_rod", Path: "/shop/rod", Body: map[string]any{"rod_id": best.ID}}, true
}

// buyEgg starts the most expensive egg the player can afford without
// dipping into the bait reserve
func (s *Strategy) buyEgg(state *engine.PlayerState, _ time.Time) (Step, bool) {
	var best *catalog.EggType
	for i := range s.cat.Eggs {
		egg := &s.cat.Eggs[i]
		if egg.Cost > state.Coins-s.reserve {
			continue
		}
		if !state.CanStartActivity(s.cat, engine.IncubationTarget{EggID: egg.ID}).Allowed {
			continue
		}
		if best == nil || egg.Cost > best.Cost {
			best = egg
		}
	}
	if best == nil {
		return Step{}, false
	}
	return Step{Action: "buy_egg", Path: "/shop/egg", Body: map[string]any{"egg_id": best.ID}}, true
}

// buyBait picks the best bait costing at most a quarter of the purse, or the
// cheapest one the player can pay for
func (s *Strategy) buyBait(state *engine.PlayerState, _ time.Time) (Step, bool) {
	if state.Fishing.Bait != nil {
		return Step{}, false
	}

	var best, cheapest *catalog.Bait
	for i := range s.cat.Baits {
		bait := &s.cat.Baits[i]
		if bait.Price > state.Coins {
			continue
		}
		if cheapest == nil || bait.Price < cheapest.Price {
			cheapest = bait
		}
		if bait.Price*4 <= state.Coins && (best == nil || bait.LuckBonus > best.LuckBonus) {
			best = bait
		}
	}
	if best == nil {
		best = cheapest
	}
	if best == nil {
		return Step{}, false
	}
	return Step{Action: "buy_bait", Path: "/shop/bait", Body: map[string]any{"bait_id": best.ID}}, true
}

// cast picks the open location with the best rarity multiplier
func (s *Strategy) cast(state *engine.PlayerState, _ time.Time) (Step, bool) {
	var best *catalog.Location
	for i := range s.cat.Locations {
		loc := &s.cat.Locations[i]
		if !state.CanStartActivity(s.cat, engine.FishingTarget{LocationID: loc.ID}).Allowed {
			continue
		}
		if len(s.cat.FishAt(loc, state.Level)) == 0 {
			continue
		}
		if best == nil || loc.RarityMultiplier >= best.RarityMultiplier {
			best = loc
		}
	}
	if best == nil {
		return Step{}, false
	}
	return Step{Action: "cast", Path: "/fishing/cast", Body: map[string]any{"location_id": best.ID}}, true
}
