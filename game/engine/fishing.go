package engine

import (
	"math"
	"time"

	"github.com/wricardo/critter-catch/game/catalog"
)

// CastResult describes a started fishing session
type CastResult struct {
	LocationID      string    `json:"location_id"`
	CastAt          time.Time `json:"cast_at"`
	EstimatedWaitMs int64     `json:"estimated_wait_ms"`
}

// CatchResult describes a resolved reel
type CatchResult struct {
	Fish             CaughtFish          `json:"fish"`
	Species          catalog.FishSpecies `json:"species"`
	Value            int                 `json:"value"`
	IsNewDiscovery   bool                `json:"is_new_discovery"`
	IsPersonalRecord bool                `json:"is_personal_record"`
	XPGained         int                 `json:"xp_gained"`
	LevelUp          LevelUp             `json:"level_up"`
	PetLevelUps      []PetLevelUp        `json:"pet_level_ups,omitempty"`
	BaitUsed         string              `json:"bait_used,omitempty"`
	BaitRemaining    int                 `json:"bait_remaining"`
}

// Cast starts fishing at a location. The wait estimate shrinks with the speed
// bonuses of the equipped rod and bait.
func (s *PlayerState) Cast(cat *catalog.Catalog, locationID string, now time.Time) (*CastResult, error) {
	if err := s.CanStartActivity(cat, FishingTarget{LocationID: locationID}).Err(); err != nil {
		return nil, err
	}

	rodSpeed, _ := s.rodBonuses(cat)
	baitSpeed, _ := s.baitBonuses(cat)
	wait := int64(float64(cat.Fishing.BaseWaitMs) / (1 + rodSpeed + baitSpeed))

	s.Fishing.Active = true
	s.Fishing.LocationID = locationID
	s.Fishing.CastAt = now
	s.Fishing.EstimatedWaitMs = wait

	return &CastResult{LocationID: locationID, CastAt: now, EstimatedWaitMs: wait}, nil
}

// AbandonFishing ends the current session without a catch. It reports whether
// a session was active.
func (s *PlayerState) AbandonFishing() bool {
	if !s.Fishing.Active {
		return false
	}
	s.clearCast()
	return true
}

// Reel resolves the active session into a catch. The wait estimate is
// informational and not enforced.
func (s *PlayerState) Reel(cat *catalog.Catalog, r Roller, now time.Time) (*CatchResult, error) {
	if !s.Fishing.Active {
		return nil, newError(CodeNotFishing, "Not currently fishing")
	}
	loc, ok := cat.Location(s.Fishing.LocationID)
	if !ok {
		return nil, newError(CodeNotFound, "Unknown location '%s'", s.Fishing.LocationID)
	}
	if s.Fishing.Inventory.Full() {
		return nil, newError(CodeInventoryFull, "Fish inventory is full (%d/%d)", s.Fishing.Inventory.Len(), s.Fishing.Inventory.Cap())
	}
	eligible := cat.FishAt(loc, s.Level)
	if len(eligible) == 0 {
		return nil, newError(CodeNoSpecies, "Nothing bites at %s at level %d", loc.Name, s.Level)
	}

	cfg := cat.Fishing
	_, rodLuck := s.rodBonuses(cat)
	_, baitLuck := s.baitBonuses(cat)

	available := make([]catalog.Rarity, 0, len(eligible))
	for _, sp := range eligible {
		available = append(available, sp.Rarity)
	}
	rarity := RollRarity(r, cfg, loc, rodLuck, baitLuck, available)

	pool := make([]*catalog.FishSpecies, 0, len(eligible))
	for _, sp := range eligible {
		if sp.Rarity == rarity {
			pool = append(pool, sp)
		}
	}
	if len(pool) == 0 {
		pool = eligible
	}
	species := pool[r.IntN(len(pool))]

	quality := RollQuality(r, cfg)
	weight := rollWeight(r, species, cfg, s.Level)

	fish := CaughtFish{
		SpeciesID: species.ID,
		Weight:    weight,
		Quality:   quality,
		CaughtAt:  now,
	}
	best, seen := s.Fishing.PersonalBests[species.ID]
	fish.IsPersonalRecord = !seen || weight > best

	result := &CatchResult{
		Species:          *species,
		Value:            SellPrice(fish, species, cfg),
		IsNewDiscovery:   !s.Fishing.Discovered[species.ID],
		IsPersonalRecord: fish.IsPersonalRecord,
	}

	if bait := s.Fishing.Bait; bait != nil {
		bait.UsesLeft--
		result.BaitUsed = bait.ID
		result.BaitRemaining = bait.UsesLeft
		if bait.UsesLeft <= 0 {
			s.Fishing.Bait = nil
			result.BaitRemaining = 0
		}
	}

	s.Fishing.Inventory.Add(fish)
	s.Fishing.Discovered[species.ID] = true
	if fish.IsPersonalRecord {
		s.Fishing.PersonalBests[species.ID] = weight
	}
	s.Fishing.TotalCaught++
	s.clearCast()

	result.Fish = fish
	result.XPGained = cfg.RarityXP[species.Rarity]
	result.LevelUp = s.AddXP(result.XPGained, cfg.Leveling)
	result.PetLevelUps = s.awardPetXP(cat.Pets.XPPerCatch, cat.Pets.Leveling)

	return result, nil
}

// rollWeight spreads the base weight by the species variance, grows it with
// the player's level and rounds to two decimals
func rollWeight(r Roller, species *catalog.FishSpecies, cfg catalog.FishingConfig, level int) float64 {
	spread := 2*r.Float64() - 1
	weight := species.BaseWeight * (1 + species.Variance*spread) * (1 + cfg.WeightVarianceLevelBonus*float64(level))
	weight = math.Round(weight*100) / 100
	if weight < cfg.MinWeight {
		weight = cfg.MinWeight
	}
	return weight
}

func (s *PlayerState) clearCast() {
	s.Fishing.Active = false
	s.Fishing.LocationID = ""
	s.Fishing.CastAt = time.Time{}
	s.Fishing.EstimatedWaitMs = 0
}

func (s *PlayerState) rodBonuses(cat *catalog.Catalog) (speed, luck float64) {
	if rod, ok := cat.Rod(s.Fishing.RodID); ok {
		return rod.SpeedBonus, rod.LuckBonus
	}
	return 0, 0
}

func (s *PlayerState) baitBonuses(cat *catalog.Catalog) (speed, luck float64) {
	if s.Fishing.Bait == nil {
		return 0, 0
	}
	if bait, ok := cat.Bait(s.Fishing.Bait.ID); ok {
		return bait.SpeedBonus, bait.LuckBonus
	}
	return 0, 0
}
