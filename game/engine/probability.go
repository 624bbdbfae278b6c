package engine

import (
	"math/rand/v2"
	"slices"

	"github.com/wricardo/critter-catch/game/catalog"
)

// Roller is the random source behind every roll. *rand.Rand satisfies it;
// tests substitute scripted sequences.
type Roller interface {
	Float64() float64
	IntN(n int) int
}

// NewRoller returns a PCG-backed Roller. Equal seeds replay equal games.
func NewRoller(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// FishingLuck is the bonus added to every tier above the lowest
func FishingLuck(loc *catalog.Location, rodLuck, baitLuck float64) float64 {
	luck := rodLuck + baitLuck
	if loc != nil {
		luck += loc.RarityMultiplier - 1
	}
	return luck
}

// RarityChances returns the adjusted rarity table for a roll, lowest tier
// first. Only the available tiers appear (all tiers when available is empty).
// Every tier above the lowest is scaled by 1+luck; the lowest takes whatever
// mass is left so the table always sums to 1.
func RarityChances(base map[catalog.Rarity]float64, luck float64, available []catalog.Rarity) []catalog.RarityChance {
	tiers := orderedTiers(available)
	if len(tiers) == 0 {
		return nil
	}

	factor := 1 + luck
	if factor < 0 {
		factor = 0
	}

	table := make([]catalog.RarityChance, len(tiers))
	upper := 0.0
	for i, tier := range tiers {
		if i == 0 {
			continue
		}
		chance := base[tier] * factor
		table[i] = catalog.RarityChance{Rarity: tier, Chance: chance}
		upper += chance
	}
	if upper > 1 {
		for i := 1; i < len(table); i++ {
			table[i].Chance /= upper
		}
		upper = 1
	}
	table[0] = catalog.RarityChance{Rarity: tiers[0], Chance: 1 - upper}
	return table
}

// RollRarity picks a rarity for a catch at loc
func RollRarity(r Roller, cfg catalog.FishingConfig, loc *catalog.Location, rodLuck, baitLuck float64, available []catalog.Rarity) catalog.Rarity {
	table := RarityChances(cfg.RarityBaseChances, FishingLuck(loc, rodLuck, baitLuck), available)
	if len(table) == 0 {
		return catalog.Common
	}
	return walkRarity(r.Float64(), table)
}

// RollEggRarity picks a rarity from an egg's own table. Rows are tried in
// declared order; the lowest tier in the table catches any leftover mass.
func RollEggRarity(r Roller, egg *catalog.EggType) catalog.Rarity {
	if len(egg.RarityChances) == 0 {
		return catalog.Common
	}
	draw := r.Float64()
	cumulative := 0.0
	for _, row := range egg.RarityChances {
		cumulative += row.Chance
		if draw < cumulative {
			return row.Rarity
		}
	}
	lowest := egg.RarityChances[0].Rarity
	for _, row := range egg.RarityChances[1:] {
		if row.Rarity.Rank() < lowest.Rank() {
			lowest = row.Rarity
		}
	}
	return lowest
}

// RollQuality picks a quality grade, poor first. Poor is the fallback when
// the configured chances leave mass unassigned.
func RollQuality(r Roller, cfg catalog.FishingConfig) catalog.Quality {
	draw := r.Float64()
	cumulative := 0.0
	for _, q := range catalog.Qualities {
		cumulative += cfg.QualityChances[q]
		if draw < cumulative {
			return q
		}
	}
	return catalog.Qualities[0]
}

// RollVariant tests one draw against the absolute thresholds, rarest first
func RollVariant(r Roller, t catalog.VariantThresholds) catalog.Variant {
	draw := r.Float64()
	switch {
	case draw < t.RainbowThreshold:
		return catalog.VariantRainbow
	case draw < t.GoldenThreshold:
		return catalog.VariantGolden
	case draw < t.ShinyThreshold:
		return catalog.VariantShiny
	default:
		return catalog.VariantNormal
	}
}

func walkRarity(draw float64, table []catalog.RarityChance) catalog.Rarity {
	cumulative := 0.0
	for _, row := range table {
		cumulative += row.Chance
		if draw < cumulative {
			return row.Rarity
		}
	}
	return table[0].Rarity
}

// orderedTiers returns the distinct known tiers of available, lowest first
func orderedTiers(available []catalog.Rarity) []catalog.Rarity {
	if len(available) == 0 {
		return slices.Clone(catalog.Rarities)
	}
	seen := make(map[catalog.Rarity]bool, len(available))
	for _, tier := range available {
		if tier.Valid() {
			seen[tier] = true
		}
	}
	tiers := make([]catalog.Rarity, 0, len(seen))
	for _, tier := range catalog.Rarities {
		if seen[tier] {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}
