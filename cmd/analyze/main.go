// Command analyze prints odds and economy tables for catalog files. For every
// location it shows the rarity table and expected catch value with each rod,
// then the egg tables and the first levels of both XP curves. Arguments are
// catalog files or directories; with none it reads ./catalogs.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/config"
	"github.com/wricardo/critter-catch/game/engine"
)

// LocationOdds summarizes a location fished with one rod and bait at the
// lowest level both allow
type LocationOdds struct {
	LocationID    string
	RodID         string
	BaitID        string
	Level         int
	Luck          float64
	WaitMs        int64
	Species       int
	Chances       []catalog.RarityChance
	ExpectedValue float64
	ExpectedXP    float64
}

// EggOdds is the effective outcome table of one egg type
type EggOdds struct {
	EggID   string
	Cost    int
	Hours   float64
	Species int
	Chances []catalog.RarityChance
	Shiny   float64
	Golden  float64
	Rainbow float64
}

type namedCatalog struct {
	name string
	cat  *catalog.Catalog
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"catalogs"}
	}

	failed := false
	for _, path := range paths {
		catalogs, err := loadCatalogs(path)
		if err != nil {
			fmt.Printf("Error loading %s: %v\n", path, err)
			failed = true
			continue
		}
		for _, nc := range catalogs {
			fmt.Printf("\n=== Analyzing %s ===\n", nc.name)
			analyzeCatalog(os.Stdout, nc.cat)
		}
	}

	if failed {
		os.Exit(1)
	}
}

// loadCatalogs loads one catalog file, or every catalog a directory offers
func loadCatalogs(path string) ([]namedCatalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		cat, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return []namedCatalog{{name: filepath.Base(path), cat: cat}}, nil
	}

	manager, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	infos, err := manager.ListCatalogs()
	if err != nil {
		return nil, err
	}

	catalogs := make([]namedCatalog, 0, len(infos))
	for _, ci := range infos {
		cat, err := manager.LoadCatalog(ci.CatalogID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ci.CatalogID, err)
		}
		catalogs = append(catalogs, namedCatalog{name: ci.CatalogID, cat: cat})
	}
	return catalogs, nil
}

func analyzeCatalog(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "Name: %s\n", cat.Name)
	fmt.Fprintf(w, "Starting coins: %d, starting rod: %s\n", cat.Fishing.StartingCoins, cat.Fishing.StartingRod)
	fmt.Fprintf(w, "Fish species: %d, pet species: %d\n", len(cat.FishSpecies), len(cat.PetSpecies))

	fmt.Fprintln(w, "\nFishing:")
	for i := range cat.Locations {
		loc := &cat.Locations[i]
		fmt.Fprintf(w, "  %s (level %d, multiplier %.2f)\n", loc.ID, loc.MinLevel, loc.RarityMultiplier)
		for j := range cat.Rods {
			odds := locationOdds(cat, loc, &cat.Rods[j], nil)
			if odds.Species == 0 {
				fmt.Fprintf(w, "    %-16s nothing bites at level %d\n", odds.RodID, odds.Level)
				continue
			}
			fmt.Fprintf(w, "    %-16s L%-3d wait %5.1fs  EV %7.2f  XP %5.2f  %s\n",
				odds.RodID, odds.Level, float64(odds.WaitMs)/1000, odds.ExpectedValue, odds.ExpectedXP, formatChances(odds.Chances))
		}
		for j := range cat.Baits {
			odds := locationOdds(cat, loc, startingRod(cat), &cat.Baits[j])
			if odds.Species == 0 {
				continue
			}
			fmt.Fprintf(w, "    + %-14s L%-3d wait %5.1fs  EV %7.2f  XP %5.2f  %s\n",
				odds.BaitID, odds.Level, float64(odds.WaitMs)/1000, odds.ExpectedValue, odds.ExpectedXP, formatChances(odds.Chances))
		}
	}

	if len(cat.Eggs) > 0 {
		fmt.Fprintln(w, "\nEggs:")
		for i := range cat.Eggs {
			odds := eggOdds(cat, &cat.Eggs[i])
			fmt.Fprintf(w, "  %-14s cost %5d  %5.2fh  %d species  %s\n",
				odds.EggID, odds.Cost, odds.Hours, odds.Species, formatChances(odds.Chances))
			fmt.Fprintf(w, "    variants: shiny %.2f%%, golden %.2f%%, rainbow %.2f%%\n",
				odds.Shiny*100, odds.Golden*100, odds.Rainbow*100)
		}
	}

	fmt.Fprintln(w, "\nPlayer XP per level:")
	fmt.Fprintf(w, "  %s\n", formatCurve(cat.Fishing.Leveling, 10))
	fmt.Fprintln(w, "Pet XP per level:")
	fmt.Fprintf(w, "  %s\n", formatCurve(cat.Pets.Leveling, 10))
}

func startingRod(cat *catalog.Catalog) *catalog.Rod {
	rod, _ := cat.Rod(cat.Fishing.StartingRod)
	return rod
}

// locationOdds evaluates a location with the given gear. Either may be nil.
func locationOdds(cat *catalog.Catalog, loc *catalog.Location, rod *catalog.Rod, bait *catalog.Bait) LocationOdds {
	odds := LocationOdds{LocationID: loc.ID, Level: max(loc.MinLevel, 1)}

	var speed, rodLuck, baitLuck float64
	if rod != nil {
		odds.RodID = rod.ID
		odds.Level = max(odds.Level, rod.MinLevel)
		speed += rod.SpeedBonus
		rodLuck = rod.LuckBonus
	}
	if bait != nil {
		odds.BaitID = bait.ID
		speed += bait.SpeedBonus
		baitLuck = bait.LuckBonus
	}
	odds.Luck = engine.FishingLuck(loc, rodLuck, baitLuck)
	odds.WaitMs = int64(float64(cat.Fishing.BaseWaitMs) / (1 + speed))

	eligible := cat.FishAt(loc, odds.Level)
	odds.Species = len(eligible)
	if len(eligible) == 0 {
		return odds
	}

	available := make([]catalog.Rarity, 0, len(eligible))
	for _, sp := range eligible {
		available = append(available, sp.Rarity)
	}
	odds.Chances = engine.RarityChances(cat.Fishing.RarityBaseChances, odds.Luck, available)

	for _, row := range odds.Chances {
		var pool []*catalog.FishSpecies
		for _, sp := range eligible {
			if sp.Rarity == row.Rarity {
				pool = append(pool, sp)
			}
		}
		if len(pool) == 0 {
			continue
		}
		value := 0.0
		for _, sp := range pool {
			value += expectedPrice(sp, cat.Fishing)
		}
		odds.ExpectedValue += row.Chance * value / float64(len(pool))
		odds.ExpectedXP += row.Chance * float64(cat.Fishing.RarityXP[row.Rarity])
	}
	return odds
}

// expectedPrice is the sell price of a species averaged over the quality roll
func expectedPrice(species *catalog.FishSpecies, cfg catalog.FishingConfig) float64 {
	value := 0.0
	for _, q := range catalog.Qualities {
		fish := engine.CaughtFish{SpeciesID: species.ID, Quality: q}
		value += cfg.QualityChances[q] * float64(engine.SellPrice(fish, species, cfg))
	}
	return value
}

// eggOdds reads an egg's table. Variant thresholds are nested, so each
// variant's effective chance is the gap to the next rarer threshold.
func eggOdds(cat *catalog.Catalog, egg *catalog.EggType) EggOdds {
	v := egg.Variants
	return EggOdds{
		EggID:   egg.ID,
		Cost:    egg.Cost,
		Hours:   egg.Incubation().Hours(),
		Species: len(cat.PetsInEgg(egg)),
		Chances: egg.RarityChances,
		Rainbow: v.RainbowThreshold,
		Golden:  max(v.GoldenThreshold-v.RainbowThreshold, 0),
		Shiny:   max(v.ShinyThreshold-max(v.GoldenThreshold, v.RainbowThreshold), 0),
	}
}

func formatChances(chances []catalog.RarityChance) string {
	parts := make([]string, 0, len(chances))
	for _, row := range chances {
		parts = append(parts, fmt.Sprintf("%s %.1f%%", row.Rarity, row.Chance*100))
	}
	return strings.Join(parts, ", ")
}

// formatCurve lists the XP needed for each of the first levels of a curve
func formatCurve(curve catalog.LevelCurve, levels int) string {
	if curve.MaxLevel > 0 && curve.MaxLevel < levels {
		levels = curve.MaxLevel
	}
	parts := make([]string, 0, levels)
	total := 0
	for level := 1; level <= levels; level++ {
		xp := engine.XPForLevel(level, curve)
		total += xp
		parts = append(parts, fmt.Sprintf("L%d:%d", level, xp))
	}
	return fmt.Sprintf("%s (total %d)", strings.Join(parts, " "), total)
}
