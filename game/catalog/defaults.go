package catalog

// DefaultName is the identifier of the built-in catalog
const DefaultName = "default"

// DefaultFishingConfig returns the stock fishing tunables
func DefaultFishingConfig() FishingConfig {
	return FishingConfig{
		Leveling: LevelCurve{
			BaseXPPerLevel:  100,
			LevelMultiplier: 1.5,
			MaxLevel:        50,
		},
		QualityMultipliers: map[Quality]float64{
			Poor:    0.5,
			Normal:  1,
			Good:    1.5,
			Perfect: 2.5,
		},
		QualityChances: map[Quality]float64{
			Poor:    0.15,
			Normal:  0.55,
			Good:    0.22,
			Perfect: 0.08,
		},
		RarityBaseChances: map[Rarity]float64{
			Common:    0.60,
			Uncommon:  0.25,
			Rare:      0.10,
			Epic:      0.04,
			Legendary: 0.009,
			Mythic:    0.001,
		},
		RarityXP: map[Rarity]int{
			Common:    10,
			Uncommon:  25,
			Rare:      50,
			Epic:      100,
			Legendary: 250,
			Mythic:    500,
		},
		BaseWaitMs:               5000,
		WeightVarianceLevelBonus: 0.01,
		MinWeight:                0.01,
		InventoryCapacity:        50,
		StartingRod:              "basic_rod",
		StartingCoins:            100,
	}
}

// DefaultPetConfig returns the stock pet tunables
func DefaultPetConfig() PetConfig {
	return PetConfig{
		Leveling: LevelCurve{
			BaseXPPerLevel:  50,
			LevelMultiplier: 1.2,
			MaxLevel:        100,
		},
		VariantPowerBonuses: VariantPowerBonuses{
			Shiny:   1.5,
			Golden:  2,
			Rainbow: 3,
		},
		EvolvePowerMultiplier: 2.5,
		MaxEquipped:           3,
		MaxIncubators:         3,
		InventoryCapacity:     100,
		XPPerCatch:            5,
	}
}

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Name:        DefaultName,
		Description: "Built-in catalog: five fishing spots, three eggs",
		Fishing:     DefaultFishingConfig(),
		Pets:        DefaultPetConfig(),
		FishSpecies: []FishSpecies{
			{ID: "goldfish", Name: "Goldfish", Rarity: Common, BaseValue: 5, BaseWeight: 0.2, Variance: 0.3},
			{ID: "minnow", Name: "Minnow", Rarity: Common, BaseValue: 3, BaseWeight: 0.05, Variance: 0.2},
			{ID: "carp", Name: "Carp", Rarity: Common, BaseValue: 8, BaseWeight: 2.5, Variance: 0.4},
			{ID: "bass", Name: "Bass", Rarity: Uncommon, BaseValue: 15, BaseWeight: 1.8, Variance: 0.3},
			{ID: "trout", Name: "Trout", Rarity: Uncommon, BaseValue: 18, BaseWeight: 1.2, Variance: 0.3, MinLevel: 3},
			{ID: "catfish", Name: "Catfish", Rarity: Uncommon, BaseValue: 20, BaseWeight: 4, Variance: 0.5},
			{ID: "koi", Name: "Koi", Rarity: Rare, BaseValue: 45, BaseWeight: 3, Variance: 0.3},
			{ID: "salmon", Name: "Salmon", Rarity: Rare, BaseValue: 50, BaseWeight: 4.5, Variance: 0.3, MinLevel: 3},
			{ID: "pike", Name: "Pike", Rarity: Rare, BaseValue: 55, BaseWeight: 6, Variance: 0.4, MinLevel: 5},
			{ID: "sturgeon", Name: "Sturgeon", Rarity: Epic, BaseValue: 150, BaseWeight: 25, Variance: 0.5, MinLevel: 5},
			{ID: "tuna", Name: "Bluefin Tuna", Rarity: Epic, BaseValue: 180, BaseWeight: 60, Variance: 0.4, MinLevel: 10},
			{ID: "swordfish", Name: "Swordfish", Rarity: Legendary, BaseValue: 400, BaseWeight: 90, Variance: 0.3, MinLevel: 10},
			{ID: "golden_koi", Name: "Golden Koi", Rarity: Legendary, BaseValue: 500, BaseWeight: 5, Variance: 0.2},
			{ID: "anglerfish", Name: "Anglerfish", Rarity: Epic, BaseValue: 220, BaseWeight: 8, Variance: 0.5, MinLevel: 20},
			{ID: "kraken", Name: "Kraken Spawn", Rarity: Mythic, BaseValue: 2000, BaseWeight: 150, Variance: 0.5, MinLevel: 20},
		},
		Locations: []Location{
			{
				ID: "pond", Name: "Village Pond", Description: "Still water behind the mill",
				MinLevel: 1, RarityMultiplier: 1,
				Species: []string{"goldfish", "minnow", "carp", "bass", "koi", "golden_koi"},
			},
			{
				ID: "river", Name: "Rushing River", Description: "Cold and fast",
				MinLevel: 3, RarityMultiplier: 1.1,
				Species: []string{"minnow", "carp", "trout", "catfish", "salmon", "pike"},
			},
			{
				ID: "lake", Name: "Mirror Lake", Description: "Deep, clear and quiet",
				MinLevel: 5, RarityMultiplier: 1.2,
				Species: []string{"carp", "bass", "catfish", "pike", "sturgeon", "golden_koi"},
			},
			{
				ID: "ocean", Name: "Open Ocean", Description: "Big water, big fish",
				MinLevel: 10, RarityMultiplier: 1.4,
				Species: []string{"tuna", "swordfish", "catfish", "salmon"},
			},
			{
				ID: "abyss", Name: "The Abyss", Description: "Nothing down here is friendly",
				MinLevel: 20, RarityMultiplier: 1.8,
				Species: []string{"anglerfish", "sturgeon", "swordfish", "kraken"},
			},
		},
		Rods: []Rod{
			{ID: "basic_rod", Name: "Basic Rod", Price: 0},
			{ID: "fiberglass_rod", Name: "Fiberglass Rod", Price: 150, MinLevel: 3, SpeedBonus: 0.1, LuckBonus: 0.05},
			{ID: "carbon_rod", Name: "Carbon Rod", Price: 600, MinLevel: 8, SpeedBonus: 0.25, LuckBonus: 0.1},
			{ID: "master_rod", Name: "Master Rod", Price: 2500, MinLevel: 15, SpeedBonus: 0.5, LuckBonus: 0.2},
		},
		Baits: []Bait{
			{ID: "worm", Name: "Worm", Price: 10, Uses: 10, SpeedBonus: 0.05, LuckBonus: 0.02},
			{ID: "shrimp", Name: "Shrimp", Price: 40, Uses: 10, SpeedBonus: 0.1, LuckBonus: 0.05},
			{ID: "glow_lure", Name: "Glow Lure", Price: 150, Uses: 5, SpeedBonus: 0.2, LuckBonus: 0.15},
		},
		PetSpecies: []PetSpecies{
			{ID: "cat", Name: "Cat", Rarity: Common, BaseValue: 20, BasePower: 100, EvolvesTo: "tiger", EvolveLevel: 25},
			{ID: "dog", Name: "Dog", Rarity: Common, BaseValue: 20, BasePower: 110, EvolvesTo: "wolf", EvolveLevel: 20},
			{ID: "bunny", Name: "Bunny", Rarity: Common, BaseValue: 15, BasePower: 80},
			{ID: "hamster", Name: "Hamster", Rarity: Common, BaseValue: 10, BasePower: 60},
			{ID: "fox", Name: "Fox", Rarity: Uncommon, BaseValue: 60, BasePower: 150, EvolvesTo: "kitsune", EvolveLevel: 30},
			{ID: "owl", Name: "Owl", Rarity: Uncommon, BaseValue: 55, BasePower: 140},
			{ID: "tiger", Name: "Tiger", Rarity: Rare, BaseValue: 200, BasePower: 300},
			{ID: "wolf", Name: "Wolf", Rarity: Rare, BaseValue: 180, BasePower: 280},
			{ID: "panda", Name: "Panda", Rarity: Rare, BaseValue: 220, BasePower: 320},
			{ID: "dragon", Name: "Dragon", Rarity: Epic, BaseValue: 600, BasePower: 600, EvolvesTo: "elder_dragon", EvolveLevel: 40},
			{ID: "unicorn", Name: "Unicorn", Rarity: Legendary, BaseValue: 1500, BasePower: 900},
			{ID: "phoenix", Name: "Phoenix", Rarity: Legendary, BaseValue: 1800, BasePower: 1000},
			{ID: "kitsune", Name: "Kitsune", Rarity: Legendary, BaseValue: 1600, BasePower: 800},
			{ID: "elder_dragon", Name: "Elder Dragon", Rarity: Mythic, BaseValue: 5000, BasePower: 2000},
		},
		Eggs: []EggType{
			{
				ID: "basic_egg", Name: "Basic Egg", Cost: 100, IncubationMs: 60_000,
				RarityChances: []RarityChance{
					{Rarity: Common, Chance: 0.70},
					{Rarity: Uncommon, Chance: 0.25},
					{Rarity: Rare, Chance: 0.05},
				},
				Species:  []string{"cat", "dog", "bunny", "hamster", "fox", "owl", "tiger"},
				Variants: VariantThresholds{RainbowThreshold: 0.001, GoldenThreshold: 0.01, ShinyThreshold: 0.05},
			},
			{
				ID: "rare_egg", Name: "Rare Egg", Cost: 500, MinLevel: 5, IncubationMs: 300_000,
				RarityChances: []RarityChance{
					{Rarity: Common, Chance: 0.30},
					{Rarity: Uncommon, Chance: 0.40},
					{Rarity: Rare, Chance: 0.25},
					{Rarity: Epic, Chance: 0.05},
				},
				Species:  []string{"cat", "fox", "owl", "wolf", "panda", "dragon"},
				Variants: VariantThresholds{RainbowThreshold: 0.005, GoldenThreshold: 0.02, ShinyThreshold: 0.08},
			},
			{
				ID: "legendary_egg", Name: "Legendary Egg", Cost: 2500, MinLevel: 15, IncubationMs: 1_800_000,
				RarityChances: []RarityChance{
					{Rarity: Rare, Chance: 0.50},
					{Rarity: Epic, Chance: 0.35},
					{Rarity: Legendary, Chance: 0.14},
					{Rarity: Mythic, Chance: 0.01},
				},
				Species:  []string{"panda", "dragon", "unicorn", "phoenix", "kitsune", "elder_dragon"},
				Variants: VariantThresholds{RainbowThreshold: 0.01, GoldenThreshold: 0.04, ShinyThreshold: 0.12},
			},
		},
	}
}
