package catalog

import "time"

// Rarity is the ordered classification driving selection odds and rewards
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
	Mythic    Rarity = "mythic"
)

// Rarities lists every tier from lowest to highest
var Rarities = []Rarity{Common, Uncommon, Rare, Epic, Legendary, Mythic}

// Rank returns the position of r in Rarities, or -1 for an unknown tier
func (r Rarity) Rank() int {
	for i, tier := range Rarities {
		if tier == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is a known tier
func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

// Quality is the secondary roll that scales sell value
type Quality string

const (
	Poor    Quality = "poor"
	Normal  Quality = "normal"
	Good    Quality = "good"
	Perfect Quality = "perfect"
)

// Qualities lists every grade from lowest to highest
var Qualities = []Quality{Poor, Normal, Good, Perfect}

// Valid reports whether q is a known grade
func (q Quality) Valid() bool {
	for _, grade := range Qualities {
		if grade == q {
			return true
		}
	}
	return false
}

// Variant is the cosmetic overlay rolled when a pet hatches. A pet carries
// exactly one variant.
type Variant string

const (
	VariantNormal  Variant = "normal"
	VariantShiny   Variant = "shiny"
	VariantGolden  Variant = "golden"
	VariantRainbow Variant = "rainbow"
)

// FishSpecies is the template for a catchable fish
type FishSpecies struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Rarity     Rarity   `json:"rarity" yaml:"rarity"`
	BaseValue  int      `json:"base_value" yaml:"base_value"`
	BaseWeight float64  `json:"base_weight" yaml:"base_weight"`
	Variance   float64  `json:"variance" yaml:"variance"` // fraction of BaseWeight, 0..1
	MinLevel   int      `json:"min_level,omitempty" yaml:"min_level,omitempty"`
	Locations  []string `json:"locations,omitempty" yaml:"locations,omitempty"`
}

// PetSpecies is the template for a hatchable pet
type PetSpecies struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Rarity      Rarity `json:"rarity" yaml:"rarity"`
	BaseValue   int    `json:"base_value" yaml:"base_value"`
	BasePower   int    `json:"base_power" yaml:"base_power"`
	EvolvesTo   string `json:"evolves_to,omitempty" yaml:"evolves_to,omitempty"`
	EvolveLevel int    `json:"evolve_level,omitempty" yaml:"evolve_level,omitempty"`
}

// CanEvolve reports whether the species has an evolution target
func (p PetSpecies) CanEvolve() bool {
	return p.EvolvesTo != ""
}

// Location is a fishing spot
type Location struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description,omitempty" yaml:"description,omitempty"`
	MinLevel         int      `json:"min_level" yaml:"min_level"`
	Species          []string `json:"species" yaml:"species"`
	RarityMultiplier float64  `json:"rarity_multiplier" yaml:"rarity_multiplier"`
}

// Rod is permanent fishing equipment
type Rod struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Price      int     `json:"price" yaml:"price"`
	MinLevel   int     `json:"min_level,omitempty" yaml:"min_level,omitempty"`
	SpeedBonus float64 `json:"speed_bonus" yaml:"speed_bonus"`
	LuckBonus  float64 `json:"luck_bonus" yaml:"luck_bonus"`
}

// Bait is consumable fishing equipment; one use is spent per catch
type Bait struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Price      int     `json:"price" yaml:"price"`
	Uses       int     `json:"uses" yaml:"uses"`
	SpeedBonus float64 `json:"speed_bonus" yaml:"speed_bonus"`
	LuckBonus  float64 `json:"luck_bonus" yaml:"luck_bonus"`
}

// RarityChance is one row of an egg's rarity table
type RarityChance struct {
	Rarity Rarity  `json:"rarity" yaml:"rarity"`
	Chance float64 `json:"chance" yaml:"chance"`
}

// VariantThresholds are absolute boundaries tested rarest first against a
// single draw in [0,1): draw < Rainbow gives rainbow, else draw < Golden gives
// golden, else draw < Shiny gives shiny. The golden tier therefore has an
// effective probability of Golden-Rainbow, and shiny of Shiny-Golden.
type VariantThresholds struct {
	RainbowThreshold float64 `json:"rainbow_threshold" yaml:"rainbow_threshold"`
	GoldenThreshold  float64 `json:"golden_threshold" yaml:"golden_threshold"`
	ShinyThreshold   float64 `json:"shiny_threshold" yaml:"shiny_threshold"`
}

// EggType is a purchasable egg
type EggType struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	Cost          int               `json:"cost" yaml:"cost"`
	MinLevel      int               `json:"min_level,omitempty" yaml:"min_level,omitempty"`
	IncubationMs  int64             `json:"incubation_ms" yaml:"incubation_ms"`
	RarityChances []RarityChance    `json:"rarity_chances" yaml:"rarity_chances"`
	Species       []string          `json:"species" yaml:"species"`
	Variants      VariantThresholds `json:"variants" yaml:"variants"`
}

// Incubation returns the incubation time as a duration
func (e EggType) Incubation() time.Duration {
	return time.Duration(e.IncubationMs) * time.Millisecond
}

// LevelCurve parameterises xpForLevel
type LevelCurve struct {
	BaseXPPerLevel  int     `json:"base_xp_per_level" yaml:"base_xp_per_level"`
	LevelMultiplier float64 `json:"level_multiplier" yaml:"level_multiplier"`
	MaxLevel        int     `json:"max_level" yaml:"max_level"`
}

// FishingConfig holds every tunable of the fishing loop
type FishingConfig struct {
	Leveling                 LevelCurve          `json:"leveling" yaml:"leveling"`
	QualityMultipliers       map[Quality]float64 `json:"quality_multipliers" yaml:"quality_multipliers"`
	QualityChances           map[Quality]float64 `json:"quality_chances" yaml:"quality_chances"`
	RarityBaseChances        map[Rarity]float64  `json:"rarity_base_chances" yaml:"rarity_base_chances"`
	RarityXP                 map[Rarity]int      `json:"rarity_xp" yaml:"rarity_xp"`
	BaseWaitMs               int64               `json:"base_wait_ms" yaml:"base_wait_ms"`
	WeightVarianceLevelBonus float64             `json:"weight_variance_level_bonus" yaml:"weight_variance_level_bonus"`
	MinWeight                float64             `json:"min_weight" yaml:"min_weight"`
	InventoryCapacity        int                 `json:"inventory_capacity" yaml:"inventory_capacity"`
	StartingRod              string              `json:"starting_rod" yaml:"starting_rod"`
	StartingCoins            int                 `json:"starting_coins" yaml:"starting_coins"`
}

// VariantPowerBonuses are the power multipliers granted by each variant
type VariantPowerBonuses struct {
	Shiny   float64 `json:"shiny" yaml:"shiny"`
	Golden  float64 `json:"golden" yaml:"golden"`
	Rainbow float64 `json:"rainbow" yaml:"rainbow"`
}

// Multiplier returns the power multiplier for v; normal pets get 1
func (b VariantPowerBonuses) Multiplier(v Variant) float64 {
	switch v {
	case VariantShiny:
		return b.Shiny
	case VariantGolden:
		return b.Golden
	case VariantRainbow:
		return b.Rainbow
	default:
		return 1
	}
}

// PetConfig holds every tunable of the pet loop
type PetConfig struct {
	Leveling              LevelCurve          `json:"leveling" yaml:"leveling"`
	VariantPowerBonuses   VariantPowerBonuses `json:"variant_power_bonuses" yaml:"variant_power_bonuses"`
	EvolvePowerMultiplier float64             `json:"evolve_power_multiplier" yaml:"evolve_power_multiplier"`
	MaxEquipped           int                 `json:"max_equipped" yaml:"max_equipped"`
	MaxIncubators         int                 `json:"max_incubators" yaml:"max_incubators"`
	InventoryCapacity     int                 `json:"inventory_capacity" yaml:"inventory_capacity"`
	XPPerCatch            int                 `json:"xp_per_catch" yaml:"xp_per_catch"`
}
