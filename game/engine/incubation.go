package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/wricardo/critter-catch/game/catalog"
)

// HatchResult describes a hatched egg
type HatchResult struct {
	Pet     OwnedPet           `json:"pet"`
	Species catalog.PetSpecies `json:"species"`
	EggID   string             `json:"egg_id"`
	IsNew   bool               `json:"is_new"`
}

// Duration returns the total incubation time
func (e IncubatingEgg) Duration() time.Duration {
	return time.Duration(e.DurationMs) * time.Millisecond
}

// IsReady reports whether the egg can hatch at now
func (e IncubatingEgg) IsReady(now time.Time) bool {
	return !now.Before(e.StartTime.Add(e.Duration()))
}

// TimeRemaining returns how long until the egg is ready, never negative
func (e IncubatingEgg) TimeRemaining(now time.Time) time.Duration {
	left := e.StartTime.Add(e.Duration()).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// StartIncubation buys an egg and places it in a free incubator. The cost is
// charged only once every check has passed.
func (s *PlayerState) StartIncubation(cat *catalog.Catalog, eggID string, now time.Time) (*IncubatingEgg, error) {
	if err := s.CanStartActivity(cat, IncubationTarget{EggID: eggID}).Err(); err != nil {
		return nil, err
	}
	egg, _ := cat.Egg(eggID)
	if s.Coins < egg.Cost {
		return nil, newError(CodeInsufficientFunds, "%s costs %d coins, you have %d", egg.Name, egg.Cost, s.Coins)
	}

	incubating := IncubatingEgg{
		ID:         uuid.NewString(),
		EggID:      egg.ID,
		StartTime:  now,
		DurationMs: egg.IncubationMs,
	}
	s.Pets.Incubators.Add(incubating)
	s.Coins -= egg.Cost
	s.Pets.EggsBought++
	return &incubating, nil
}

// Hatch opens a ready egg: it rolls a rarity from the egg's table, a species
// of that rarity, then a variant whose bonus scales the base power.
func (s *PlayerState) Hatch(cat *catalog.Catalog, incubatorID string, r Roller, now time.Time) (*HatchResult, error) {
	idx := s.FindIncubator(incubatorID)
	if idx < 0 {
		return nil, newError(CodeNotFound, "No incubating egg with id '%s'", incubatorID)
	}
	incubating, _ := s.Pets.Incubators.At(idx)
	if !incubating.IsReady(now) {
		return nil, newError(CodeNotReady, "Egg is not ready, %s remaining", incubating.TimeRemaining(now).Round(time.Second))
	}
	if s.Pets.Inventory.Full() {
		return nil, newError(CodeInventoryFull, "Pet inventory is full (%d/%d)", s.Pets.Inventory.Len(), s.Pets.Inventory.Cap())
	}
	egg, ok := cat.Egg(incubating.EggID)
	if !ok {
		return nil, newError(CodeNotFound, "Unknown egg '%s'", incubating.EggID)
	}
	eligible := cat.PetsInEgg(egg)
	if len(eligible) == 0 {
		return nil, newError(CodeNoSpecies, "%s has no species to hatch", egg.Name)
	}

	rarity := RollEggRarity(r, egg)
	pool := make([]*catalog.PetSpecies, 0, len(eligible))
	for _, sp := range eligible {
		if sp.Rarity == rarity {
			pool = append(pool, sp)
		}
	}
	if len(pool) == 0 {
		pool = eligible
	}
	species := pool[r.IntN(len(pool))]
	variant := RollVariant(r, egg.Variants)

	pet := OwnedPet{
		ID:        uuid.NewString(),
		SpeciesID: species.ID,
		Progress:  Progress{Level: 1},
		Power:     int(math.Round(float64(species.BasePower) * cat.Pets.VariantPowerBonuses.Multiplier(variant))),
		Variant:   variant,
		HatchedAt: now,
	}

	s.Pets.Incubators.RemoveAt(idx)
	s.Pets.Inventory.Add(pet)
	isNew := !s.Pets.Discovered[species.ID]
	s.Pets.Discovered[species.ID] = true
	s.Pets.TotalHatched++

	return &HatchResult{Pet: pet, Species: *species, EggID: egg.ID, IsNew: isNew}, nil
}

// ReadyEggs returns the ids of the eggs that can hatch at now
func (s *PlayerState) ReadyEggs(now time.Time) []string {
	var ids []string
	for _, egg := range s.Pets.Incubators.Items() {
		if egg.IsReady(now) {
			ids = append(ids, egg.ID)
		}
	}
	return ids
}
