package engine

import (
	"math"

	"github.com/wricardo/critter-catch/game/catalog"
)

// XPForLevel returns the experience needed to advance into level, or 0 for
// level <= 0
func XPForLevel(level int, curve catalog.LevelCurve) int {
	if level <= 0 {
		return 0
	}
	return int(math.Floor(float64(curve.BaseXPPerLevel) * math.Pow(curve.LevelMultiplier, float64(level-1))))
}

// LevelUp describes the outcome of adding experience
type LevelUp struct {
	Leveled bool `json:"leveled"`
	From    int  `json:"from"`
	To      int  `json:"to"`
}

// AddXP adds experience, advancing as many levels as it pays for. Levels stop
// at the curve's max; leftover experience is kept.
func (p *Progress) AddXP(amount int, curve catalog.LevelCurve) LevelUp {
	from := p.Level
	if amount > 0 {
		p.Experience += amount
	}
	for p.Level < curve.MaxLevel {
		need := XPForLevel(p.Level+1, curve)
		if need <= 0 || p.Experience < need {
			break
		}
		p.Experience -= need
		p.Level++
	}
	return LevelUp{Leveled: p.Level > from, From: from, To: p.Level}
}

// PetLevelUp is a level change of one pet
type PetLevelUp struct {
	PetID string `json:"pet_id"`
	LevelUp
}

// EvolveResult describes a completed evolution
type EvolveResult struct {
	Pet         OwnedPet `json:"pet"`
	FromSpecies string   `json:"from_species"`
	ToSpecies   string   `json:"to_species"`
	PowerBefore int      `json:"power_before"`
	PowerAfter  int      `json:"power_after"`
	IsNew       bool     `json:"is_new"`
}

// Evolve turns a pet into its species' evolution target. The pet keeps its
// id, level, variant, equip and lock flags; its power is multiplied.
func (s *PlayerState) Evolve(cat *catalog.Catalog, petID string) (*EvolveResult, error) {
	idx := s.FindPet(petID)
	if idx < 0 {
		return nil, newError(CodePetNotFound, "Pet not found")
	}
	pet := s.Pets.Inventory.Ptr(idx)

	species, ok := cat.Pet(pet.SpeciesID)
	if !ok || !species.CanEvolve() {
		return nil, newError(CodeCannotEvolve, "This pet cannot evolve")
	}
	target, ok := cat.Pet(species.EvolvesTo)
	if !ok {
		return nil, newError(CodeCannotEvolve, "This pet cannot evolve")
	}
	if pet.Level < species.EvolveLevel {
		return nil, newError(CodeLevelRequired, "Need level %d", species.EvolveLevel)
	}

	before := pet.Power
	pet.Power = int(math.Floor(float64(pet.Power) * cat.Pets.EvolvePowerMultiplier))
	pet.SpeciesID = target.ID

	isNew := !s.Pets.Discovered[target.ID]
	s.Pets.Discovered[target.ID] = true
	s.Pets.TotalEvolutions++

	return &EvolveResult{
		Pet:         *pet,
		FromSpecies: species.ID,
		ToSpecies:   target.ID,
		PowerBefore: before,
		PowerAfter:  pet.Power,
		IsNew:       isNew,
	}, nil
}

// awardPetXP gives every equipped pet the same experience
func (s *PlayerState) awardPetXP(amount int, curve catalog.LevelCurve) []PetLevelUp {
	if amount <= 0 {
		return nil
	}
	var ups []PetLevelUp
	for _, id := range s.Pets.Equipped.Items() {
		idx := s.FindPet(id)
		if idx < 0 {
			continue
		}
		pet := s.Pets.Inventory.Ptr(idx)
		if up := pet.AddXP(amount, curve); up.Leveled {
			ups = append(ups, PetLevelUp{PetID: pet.ID, LevelUp: up})
		}
	}
	return ups
}
