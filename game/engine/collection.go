package engine

import (
	"math"

	"github.com/wricardo/critter-catch/game/catalog"
)

// Equip adds a pet to the equip set
func (s *PlayerState) Equip(petID string) error {
	idx := s.FindPet(petID)
	if idx < 0 {
		return newError(CodePetNotFound, "Pet not found")
	}
	pet := s.Pets.Inventory.Ptr(idx)
	if pet.Equipped {
		return newError(CodeAlreadyEquipped, "Already equipped")
	}
	if !s.Pets.Equipped.Add(petID) {
		return newError(CodeMaxEquipped, "Max pets equipped")
	}
	pet.Equipped = true
	return nil
}

// Unequip removes a pet from the equip set
func (s *PlayerState) Unequip(petID string) error {
	slot := s.Pets.Equipped.IndexFunc(func(id string) bool { return id == petID })
	if slot < 0 {
		return newError(CodeNotEquipped, "Not equipped")
	}
	s.Pets.Equipped.RemoveAt(slot)
	if idx := s.FindPet(petID); idx >= 0 {
		s.Pets.Inventory.Ptr(idx).Equipped = false
	}
	return nil
}

// RemovePet releases a pet. An equipped pet is unequipped first; a locked pet
// is refused.
func (s *PlayerState) RemovePet(petID string) (*OwnedPet, error) {
	idx := s.FindPet(petID)
	if idx < 0 {
		return nil, newError(CodePetNotFound, "Pet not found")
	}
	pet, _ := s.Pets.Inventory.At(idx)
	if pet.Locked {
		return nil, newError(CodePetLocked, "Pet is locked")
	}
	if slot := s.Pets.Equipped.IndexFunc(func(id string) bool { return id == petID }); slot >= 0 {
		s.Pets.Equipped.RemoveAt(slot)
	}
	s.Pets.Inventory.RemoveAt(idx)
	pet.Equipped = false
	return &pet, nil
}

// SetLocked protects a pet from removal, or lifts the protection
func (s *PlayerState) SetLocked(petID string, locked bool) error {
	idx := s.FindPet(petID)
	if idx < 0 {
		return newError(CodePetNotFound, "Pet not found")
	}
	s.Pets.Inventory.Ptr(idx).Locked = locked
	return nil
}

// TierProgress counts discoveries within one rarity
type TierProgress struct {
	Discovered int `json:"discovered"`
	Total      int `json:"total"`
}

// CollectionProgress summarises discovered species against the catalog
type CollectionProgress struct {
	Discovered int                             `json:"discovered"`
	Total      int                             `json:"total"`
	Percentage float64                         `json:"percentage"`
	ByRarity   map[catalog.Rarity]TierProgress `json:"by_rarity"`
}

// PetCollection reports pet species discovered so far
func (s *PlayerState) PetCollection(cat *catalog.Catalog) CollectionProgress {
	rarities := make(map[string]catalog.Rarity, len(cat.PetSpecies))
	for _, sp := range cat.PetSpecies {
		rarities[sp.ID] = sp.Rarity
	}
	return collectionProgress(rarities, s.Pets.Discovered)
}

// FishCollection reports fish species discovered so far
func (s *PlayerState) FishCollection(cat *catalog.Catalog) CollectionProgress {
	rarities := make(map[string]catalog.Rarity, len(cat.FishSpecies))
	for _, sp := range cat.FishSpecies {
		rarities[sp.ID] = sp.Rarity
	}
	return collectionProgress(rarities, s.Fishing.Discovered)
}

// collectionProgress counts only ids the catalog still knows
func collectionProgress(rarities map[string]catalog.Rarity, discovered map[string]bool) CollectionProgress {
	progress := CollectionProgress{
		Total:    len(rarities),
		ByRarity: make(map[catalog.Rarity]TierProgress),
	}
	for id, rarity := range rarities {
		tier := progress.ByRarity[rarity]
		tier.Total++
		if discovered[id] {
			tier.Discovered++
			progress.Discovered++
		}
		progress.ByRarity[rarity] = tier
	}
	if progress.Total > 0 {
		pct := float64(progress.Discovered) / float64(progress.Total) * 100
		progress.Percentage = math.Round(pct*10) / 10
	}
	return progress
}
