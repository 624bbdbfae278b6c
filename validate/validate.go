// Command validate checks every catalog file (*.json, *.yaml, *.yml) in a
// directory, ../catalogs by default. A file fails when it does not parse or
// breaks a catalog rule. Valid files are also checked for content no player
// can ever reach:
//   - fish listed by no location, or gated above the level cap
//   - locations where nothing bites at their entry level
//   - pets no egg hatches and no evolution produces
//   - egg rarity rows with no species of that rarity
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/critter-catch/game/catalog"
	"github.com/wricardo/critter-catch/game/config"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found. Warnings never make a
// file invalid.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// validateCatalog loads a catalog file, applies the catalog rules and then
// looks for unreachable content
func validateCatalog(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	cat, err := config.LoadFile(filePath)
	if err != nil {
		result.Valid = false
		switch {
		case errors.Is(err, config.ErrCatalogNotFound):
			result.Errors = append(result.Errors, "Failed to read file: file does not exist")
		case errors.Is(err, config.ErrInvalidCatalog):
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid catalog: %v", err))
		default:
			result.Errors = append(result.Errors, err.Error())
		}
		return result
	}

	result.Errors = append(result.Errors,
		fmt.Sprintf("✓ Catalog: %s", cat.Name),
		fmt.Sprintf("✓ Fishing: %d species across %d locations", len(cat.FishSpecies), len(cat.Locations)),
		fmt.Sprintf("✓ Pets: %d species from %d eggs", len(cat.PetSpecies), len(cat.Eggs)),
	)
	result.Warnings = checkReachability(cat)
	return result
}

// checkReachability reports catalog content a player can never obtain
func checkReachability(cat *catalog.Catalog) []string {
	var warnings []string
	maxLevel := cat.Fishing.Leveling.MaxLevel

	for i := range cat.FishSpecies {
		sp := &cat.FishSpecies[i]
		listed := len(sp.Locations) > 0
		for j := range cat.Locations {
			for _, id := range cat.Locations[j].Species {
				if id == sp.ID {
					listed = true
				}
			}
		}
		if !listed {
			warnings = append(warnings, fmt.Sprintf("Fish '%s' is not found at any location", sp.ID))
		}
		if maxLevel > 0 && sp.MinLevel > maxLevel {
			warnings = append(warnings, fmt.Sprintf("Fish '%s' needs level %d but players stop at %d", sp.ID, sp.MinLevel, maxLevel))
		}
	}

	for i := range cat.Locations {
		loc := &cat.Locations[i]
		if maxLevel > 0 && loc.MinLevel > maxLevel {
			warnings = append(warnings, fmt.Sprintf("Location '%s' needs level %d but players stop at %d", loc.ID, loc.MinLevel, maxLevel))
			continue
		}
		if len(cat.FishAt(loc, max(loc.MinLevel, 1))) == 0 {
			warnings = append(warnings, fmt.Sprintf("Nothing bites at '%s' at its entry level %d", loc.ID, loc.MinLevel))
		}
	}

	obtainable := make(map[string]bool)
	for i := range cat.Eggs {
		egg := &cat.Eggs[i]
		pets := cat.PetsInEgg(egg)
		rarities := make(map[catalog.Rarity]bool)
		for _, sp := range pets {
			obtainable[sp.ID] = true
			rarities[sp.Rarity] = true
		}
		for _, rc := range egg.RarityChances {
			if rc.Chance > 0 && !rarities[rc.Rarity] {
				warnings = append(warnings, fmt.Sprintf("Egg '%s' rolls %s but hatches no %s pet", egg.ID, rc.Rarity, rc.Rarity))
			}
		}
	}
	for changed := true; changed; {
		changed = false
		for i := range cat.PetSpecies {
			sp := &cat.PetSpecies[i]
			if obtainable[sp.ID] && sp.CanEvolve() && !obtainable[sp.EvolvesTo] {
				obtainable[sp.EvolvesTo] = true
				changed = true
			}
		}
	}
	for i := range cat.PetSpecies {
		if !obtainable[cat.PetSpecies[i].ID] {
			warnings = append(warnings, fmt.Sprintf("Pet '%s' cannot be hatched or evolved into", cat.PetSpecies[i].ID))
		}
	}

	return warnings
}

// catalogFiles lists the catalog files in dir, sorted by name
func catalogFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// main validates every catalog in the directory named by the first argument,
// printing a concise report and exiting with non-zero status if any are
// invalid
func main() {
	catalogDir := "../catalogs"
	if len(os.Args) > 1 {
		catalogDir = os.Args[1]
	}

	files, err := catalogFiles(catalogDir)
	if err != nil {
		fmt.Printf("Error finding catalog files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No catalog files found in %s\n", catalogDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateCatalog(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
			for _, warning := range result.Warnings {
				fmt.Println("  ⚠️  " + warning)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All catalogs are valid!")
	} else {
		fmt.Println("❌ Some catalogs have errors")
		os.Exit(1)
	}
}
