package engine

import (
	"maps"
	"slices"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
)

// Progress is a level and the experience accumulated towards the next one
type Progress struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
}

// CaughtFish is one fish sitting in the fishing inventory
type CaughtFish struct {
	SpeciesID        string          `json:"species_id"`
	Weight           float64         `json:"weight"`
	Quality          catalog.Quality `json:"quality"`
	CaughtAt         time.Time       `json:"caught_at"`
	IsPersonalRecord bool            `json:"is_personal_record"`
}

// BaitSlot is the equipped bait and its remaining uses
type BaitSlot struct {
	ID       string `json:"id"`
	UsesLeft int    `json:"uses_left"`
}

// FishingState is the fishing half of a player's save
type FishingState struct {
	Active          bool               `json:"active"`
	LocationID      string             `json:"location_id,omitempty"`
	CastAt          time.Time          `json:"cast_at,omitzero"`
	EstimatedWaitMs int64              `json:"estimated_wait_ms,omitempty"`
	RodID           string             `json:"rod_id"`
	OwnedRods       []string           `json:"owned_rods"`
	Bait            *BaitSlot          `json:"bait,omitempty"`
	Inventory       Slots[CaughtFish]  `json:"inventory"`
	Discovered      map[string]bool    `json:"discovered"`
	PersonalBests   map[string]float64 `json:"personal_bests"`
	TotalCaught     int                `json:"total_caught"`
	TotalEarned     int                `json:"total_earned"`
	TotalSold       int                `json:"total_sold"`
}

// IncubatingEgg is an egg occupying an incubator slot
type IncubatingEgg struct {
	ID         string    `json:"id"`
	EggID      string    `json:"egg_id"`
	StartTime  time.Time `json:"start_time"`
	DurationMs int64     `json:"duration_ms"`
}

// OwnedPet is one pet in the player's collection
type OwnedPet struct {
	Progress

	ID        string          `json:"id"`
	SpeciesID string          `json:"species_id"`
	Power     int             `json:"power"`
	Variant   catalog.Variant `json:"variant"`
	Equipped  bool            `json:"equipped"`
	Locked    bool            `json:"locked"`
	HatchedAt time.Time       `json:"hatched_at"`
}

// PetState is the pet half of a player's save
type PetState struct {
	Incubators      Slots[IncubatingEgg] `json:"incubators"`
	Inventory       Slots[OwnedPet]      `json:"inventory"`
	Equipped        Slots[string]        `json:"equipped"`
	Discovered      map[string]bool      `json:"discovered"`
	TotalHatched    int                  `json:"total_hatched"`
	TotalEvolutions int                  `json:"total_evolutions"`
	EggsBought      int                  `json:"eggs_bought"`
}

// PlayerState is everything that changes while one player plays
type PlayerState struct {
	Progress

	PlayerID     string          `json:"player_id"`
	Coins        int             `json:"coins"`
	Fishing      FishingState    `json:"fishing"`
	Pets         PetState        `json:"pets"`
	History      []ActivityEntry `json:"history"`
	TotalActions int             `json:"total_actions"`
}

// NewPlayerState creates a level 1 player holding the catalog's starting rod
// and coins
func NewPlayerState(playerID string, cat *catalog.Catalog) *PlayerState {
	state := &PlayerState{
		PlayerID: playerID,
		Progress: Progress{Level: 1},
		Coins:    cat.Fishing.StartingCoins,
		Fishing: FishingState{
			Inventory:     NewSlots[CaughtFish](cat.Fishing.InventoryCapacity),
			OwnedRods:     []string{},
			Discovered:    make(map[string]bool),
			PersonalBests: make(map[string]float64),
		},
		Pets: PetState{
			Incubators: NewSlots[IncubatingEgg](cat.Pets.MaxIncubators),
			Inventory:  NewSlots[OwnedPet](cat.Pets.InventoryCapacity),
			Equipped:   NewSlots[string](cat.Pets.MaxEquipped),
			Discovered: make(map[string]bool),
		},
		History: []ActivityEntry{},
	}
	if rod := cat.Fishing.StartingRod; rod != "" {
		state.Fishing.RodID = rod
		state.Fishing.OwnedRods = append(state.Fishing.OwnedRods, rod)
	}
	return state
}

// FindPet returns the index of the pet with the given id, or -1
func (s *PlayerState) FindPet(petID string) int {
	return s.Pets.Inventory.IndexFunc(func(p OwnedPet) bool { return p.ID == petID })
}

// FindIncubator returns the index of the incubating egg with the given id, or -1
func (s *PlayerState) FindIncubator(incubatorID string) int {
	return s.Pets.Incubators.IndexFunc(func(e IncubatingEgg) bool { return e.ID == incubatorID })
}

// EquippedPets returns the pets currently in the equip set
func (s *PlayerState) EquippedPets() []OwnedPet {
	pets := make([]OwnedPet, 0, s.Pets.Equipped.Len())
	for _, id := range s.Pets.Equipped.Items() {
		if i := s.FindPet(id); i >= 0 {
			pet, _ := s.Pets.Inventory.At(i)
			pets = append(pets, pet)
		}
	}
	return pets
}

// OwnsRod reports whether the rod has been bought before
func (s *PlayerState) OwnsRod(rodID string) bool {
	for _, id := range s.Fishing.OwnedRods {
		if id == rodID {
			return true
		}
	}
	return false
}

// Normalize repairs a loaded save: nil maps are allocated and slot capacities
// follow the catalog, never dropping below what is already stored.
func (s *PlayerState) Normalize(cat *catalog.Catalog) {
	s.Fishing.Inventory.SetCap(cat.Fishing.InventoryCapacity)
	s.Pets.Incubators.SetCap(cat.Pets.MaxIncubators)
	s.Pets.Inventory.SetCap(cat.Pets.InventoryCapacity)
	s.Pets.Equipped.SetCap(cat.Pets.MaxEquipped)
	if s.Fishing.OwnedRods == nil {
		s.Fishing.OwnedRods = []string{}
	}
	if s.Fishing.Discovered == nil {
		s.Fishing.Discovered = make(map[string]bool)
	}
	if s.Fishing.PersonalBests == nil {
		s.Fishing.PersonalBests = make(map[string]float64)
	}
	if s.Pets.Discovered == nil {
		s.Pets.Discovered = make(map[string]bool)
	}
	if s.History == nil {
		s.History = []ActivityEntry{}
	}
}

// Clone returns a deep copy of the state, safe to read while the original
// keeps changing
func (s *PlayerState) Clone() *PlayerState {
	c := *s
	c.Fishing.OwnedRods = slices.Clone(s.Fishing.OwnedRods)
	if s.Fishing.Bait != nil {
		bait := *s.Fishing.Bait
		c.Fishing.Bait = &bait
	}
	c.Fishing.Inventory = s.Fishing.Inventory.Clone()
	c.Fishing.Discovered = maps.Clone(s.Fishing.Discovered)
	c.Fishing.PersonalBests = maps.Clone(s.Fishing.PersonalBests)
	c.Pets.Incubators = s.Pets.Incubators.Clone()
	c.Pets.Inventory = s.Pets.Inventory.Clone()
	c.Pets.Equipped = s.Pets.Equipped.Clone()
	c.Pets.Discovered = maps.Clone(s.Pets.Discovered)
	c.History = slices.Clone(s.History)
	return &c
}
