package catalog

import (
	"fmt"
	"math"
)

const chanceEpsilon = 1e-9

// Validate checks a catalog for internal consistency and playability
func Validate(c *Catalog) error {
	if c == nil {
		return fmt.Errorf("catalog validation: catalog is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("catalog validation: name is required")
	}

	if err := validateFishingConfig(c); err != nil {
		return err
	}
	if err := validatePetConfig(&c.Pets); err != nil {
		return err
	}

	// Fish species
	fishIDs := make(map[string]bool, len(c.FishSpecies))
	for _, sp := range c.FishSpecies {
		if sp.ID == "" {
			return fmt.Errorf("catalog validation: fish species with empty id")
		}
		if fishIDs[sp.ID] {
			return fmt.Errorf("catalog validation: duplicate fish species '%s'", sp.ID)
		}
		fishIDs[sp.ID] = true
		if !sp.Rarity.Valid() {
			return fmt.Errorf("catalog validation: fish '%s' has unknown rarity '%s'", sp.ID, sp.Rarity)
		}
		if sp.BaseWeight <= 0 {
			return fmt.Errorf("catalog validation: fish '%s' base_weight must be positive", sp.ID)
		}
		if sp.Variance < 0 || sp.Variance > 1 {
			return fmt.Errorf("catalog validation: fish '%s' variance must be between 0 and 1, got %g", sp.ID, sp.Variance)
		}
		if sp.BaseValue < 0 {
			return fmt.Errorf("catalog validation: fish '%s' base_value cannot be negative", sp.ID)
		}
	}

	// Locations
	if len(c.Locations) == 0 {
		return fmt.Errorf("catalog validation: at least one location is required")
	}
	locIDs := make(map[string]bool, len(c.Locations))
	hasStarter := false
	for _, loc := range c.Locations {
		if loc.ID == "" {
			return fmt.Errorf("catalog validation: location with empty id")
		}
		if locIDs[loc.ID] {
			return fmt.Errorf("catalog validation: duplicate location '%s'", loc.ID)
		}
		locIDs[loc.ID] = true
		if loc.RarityMultiplier <= 0 {
			return fmt.Errorf("catalog validation: location '%s' rarity_multiplier must be positive", loc.ID)
		}
		for _, id := range loc.Species {
			if !fishIDs[id] {
				return fmt.Errorf("catalog validation: location '%s' references unknown fish '%s'", loc.ID, id)
			}
		}
		if len(c.FishAt(&loc, math.MaxInt)) == 0 {
			return fmt.Errorf("catalog validation: location '%s' has no catchable species", loc.ID)
		}
		if loc.MinLevel <= 1 && len(c.FishAt(&loc, 1)) > 0 {
			hasStarter = true
		}
	}
	if !hasStarter {
		return fmt.Errorf("catalog validation: no location is fishable at level 1")
	}
	for _, sp := range c.FishSpecies {
		for _, id := range sp.Locations {
			if !locIDs[id] {
				return fmt.Errorf("catalog validation: fish '%s' references unknown location '%s'", sp.ID, id)
			}
		}
	}

	// Equipment
	rodIDs := make(map[string]bool, len(c.Rods))
	for _, rod := range c.Rods {
		if rod.ID == "" || rodIDs[rod.ID] {
			return fmt.Errorf("catalog validation: rod id '%s' is empty or duplicated", rod.ID)
		}
		rodIDs[rod.ID] = true
		if rod.SpeedBonus < 0 || rod.LuckBonus < 0 || rod.Price < 0 {
			return fmt.Errorf("catalog validation: rod '%s' bonuses and price cannot be negative", rod.ID)
		}
	}
	if c.Fishing.StartingRod != "" && !rodIDs[c.Fishing.StartingRod] {
		return fmt.Errorf("catalog validation: starting_rod '%s' is not a known rod", c.Fishing.StartingRod)
	}
	baitIDs := make(map[string]bool, len(c.Baits))
	for _, bait := range c.Baits {
		if bait.ID == "" || baitIDs[bait.ID] {
			return fmt.Errorf("catalog validation: bait id '%s' is empty or duplicated", bait.ID)
		}
		baitIDs[bait.ID] = true
		if bait.Uses <= 0 {
			return fmt.Errorf("catalog validation: bait '%s' uses must be positive", bait.ID)
		}
		if bait.SpeedBonus < 0 || bait.LuckBonus < 0 || bait.Price < 0 {
			return fmt.Errorf("catalog validation: bait '%s' bonuses and price cannot be negative", bait.ID)
		}
	}

	// Pet species
	petIDs := make(map[string]bool, len(c.PetSpecies))
	for _, sp := range c.PetSpecies {
		if sp.ID == "" || petIDs[sp.ID] {
			return fmt.Errorf("catalog validation: pet species id '%s' is empty or duplicated", sp.ID)
		}
		petIDs[sp.ID] = true
		if !sp.Rarity.Valid() {
			return fmt.Errorf("catalog validation: pet '%s' has unknown rarity '%s'", sp.ID, sp.Rarity)
		}
		if sp.BasePower <= 0 {
			return fmt.Errorf("catalog validation: pet '%s' base_power must be positive", sp.ID)
		}
	}
	for _, sp := range c.PetSpecies {
		if !sp.CanEvolve() {
			continue
		}
		if !petIDs[sp.EvolvesTo] {
			return fmt.Errorf("catalog validation: pet '%s' evolves into unknown species '%s'", sp.ID, sp.EvolvesTo)
		}
		if sp.EvolvesTo == sp.ID {
			return fmt.Errorf("catalog validation: pet '%s' cannot evolve into itself", sp.ID)
		}
		if sp.EvolveLevel <= 0 {
			return fmt.Errorf("catalog validation: pet '%s' evolve_level must be positive", sp.ID)
		}
	}

	// Eggs
	eggIDs := make(map[string]bool, len(c.Eggs))
	for _, egg := range c.Eggs {
		if egg.ID == "" || eggIDs[egg.ID] {
			return fmt.Errorf("catalog validation: egg id '%s' is empty or duplicated", egg.ID)
		}
		eggIDs[egg.ID] = true
		if egg.Cost < 0 || egg.IncubationMs < 0 {
			return fmt.Errorf("catalog validation: egg '%s' cost and incubation_ms cannot be negative", egg.ID)
		}
		if len(egg.Species) == 0 {
			return fmt.Errorf("catalog validation: egg '%s' has no eligible species", egg.ID)
		}
		for _, id := range egg.Species {
			if !petIDs[id] {
				return fmt.Errorf("catalog validation: egg '%s' references unknown pet '%s'", egg.ID, id)
			}
		}
		if len(egg.RarityChances) == 0 {
			return fmt.Errorf("catalog validation: egg '%s' needs a rarity table", egg.ID)
		}
		sum := 0.0
		for _, rc := range egg.RarityChances {
			if !rc.Rarity.Valid() {
				return fmt.Errorf("catalog validation: egg '%s' has unknown rarity '%s'", egg.ID, rc.Rarity)
			}
			if rc.Chance < 0 {
				return fmt.Errorf("catalog validation: egg '%s' chance for '%s' cannot be negative", egg.ID, rc.Rarity)
			}
			sum += rc.Chance
		}
		if sum > 1+chanceEpsilon {
			return fmt.Errorf("catalog validation: egg '%s' rarity chances sum to %g, must not exceed 1", egg.ID, sum)
		}
		v := egg.Variants
		if v.RainbowThreshold < 0 || v.RainbowThreshold > v.GoldenThreshold || v.GoldenThreshold > v.ShinyThreshold || v.ShinyThreshold > 1 {
			return fmt.Errorf("catalog validation: egg '%s' variant thresholds must satisfy 0 <= rainbow <= golden <= shiny <= 1", egg.ID)
		}
	}

	return nil
}

func validateFishingConfig(c *Catalog) error {
	cfg := &c.Fishing
	if err := validateCurve("fishing", cfg.Leveling); err != nil {
		return err
	}
	if cfg.BaseWaitMs < 0 {
		return fmt.Errorf("catalog validation: fishing.base_wait_ms cannot be negative")
	}
	if cfg.InventoryCapacity <= 0 {
		return fmt.Errorf("catalog validation: fishing.inventory_capacity must be positive")
	}
	if cfg.MinWeight <= 0 {
		return fmt.Errorf("catalog validation: fishing.min_weight must be positive")
	}
	if cfg.StartingCoins < 0 {
		return fmt.Errorf("catalog validation: fishing.starting_coins cannot be negative")
	}

	prev := 0.0
	for _, q := range Qualities {
		m, ok := cfg.QualityMultipliers[q]
		if !ok {
			return fmt.Errorf("catalog validation: fishing.quality_multipliers missing '%s'", q)
		}
		if m <= prev {
			return fmt.Errorf("catalog validation: fishing.quality_multipliers must increase poor < normal < good < perfect")
		}
		prev = m
	}
	if cfg.QualityMultipliers[Normal] != 1 {
		return fmt.Errorf("catalog validation: fishing.quality_multipliers.normal must be 1")
	}

	qualities := make(map[string]float64, len(cfg.QualityChances))
	for q, v := range cfg.QualityChances {
		qualities[string(q)] = v
	}
	if err := validateChances("fishing.quality_chances", qualities); err != nil {
		return err
	}

	rarities := make(map[string]float64, len(cfg.RarityBaseChances))
	for r, v := range cfg.RarityBaseChances {
		if !r.Valid() {
			return fmt.Errorf("catalog validation: fishing.rarity_base_chances has unknown rarity '%s'", r)
		}
		rarities[string(r)] = v
	}
	return validateChances("fishing.rarity_base_chances", rarities)
}

func validateChances(field string, chances map[string]float64) error {
	if len(chances) == 0 {
		return fmt.Errorf("catalog validation: %s is required", field)
	}
	sum := 0.0
	for key, v := range chances {
		if v < 0 || v > 1 {
			return fmt.Errorf("catalog validation: %s['%s'] must be between 0 and 1, got %g", field, key, v)
		}
		sum += v
	}
	if sum > 1+chanceEpsilon {
		return fmt.Errorf("catalog validation: %s sum to %g, must not exceed 1", field, sum)
	}
	return nil
}

func validatePetConfig(cfg *PetConfig) error {
	if err := validateCurve("pets", cfg.Leveling); err != nil {
		return err
	}
	if cfg.EvolvePowerMultiplier < 1 {
		return fmt.Errorf("catalog validation: pets.evolve_power_multiplier must be at least 1, got %g", cfg.EvolvePowerMultiplier)
	}
	if cfg.MaxEquipped <= 0 || cfg.MaxIncubators <= 0 || cfg.InventoryCapacity <= 0 {
		return fmt.Errorf("catalog validation: pets.max_equipped, max_incubators and inventory_capacity must be positive")
	}
	b := cfg.VariantPowerBonuses
	if b.Shiny < 1 || b.Golden < 1 || b.Rainbow < 1 {
		return fmt.Errorf("catalog validation: pets.variant_power_bonuses must all be at least 1")
	}
	return nil
}

func validateCurve(section string, curve LevelCurve) error {
	if curve.BaseXPPerLevel <= 0 {
		return fmt.Errorf("catalog validation: %s.leveling.base_xp_per_level must be positive", section)
	}
	if curve.LevelMultiplier < 1 {
		return fmt.Errorf("catalog validation: %s.leveling.level_multiplier must be at least 1", section)
	}
	if curve.MaxLevel < 1 {
		return fmt.Errorf("catalog validation: %s.leveling.max_level must be at least 1", section)
	}
	return nil
}
