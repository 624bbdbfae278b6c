// Package catalog holds the static, read-only tables that drive Critter Catch:
// fish and pet species, fishing locations, rods, bait, egg types and the
// tunable constants of both gameplay loops.
//
// A Catalog is loaded once (from JSON or YAML, see package config) and then
// shared by every session without locking. Nothing in this package mutates
// a catalog after Index has been called.
//
// Usage:
//
//	cat := catalog.Default()
//	if err := catalog.Validate(cat); err != nil {
//		log.Fatal(err)
//	}
//
//	loc, ok := cat.Location("pond")
//	if !ok {
//		fmt.Println(cat.SuggestLocation("pnod"))
//	}
//
// Balancing:
//
// FishingConfig and PetConfig enumerate every tunable (level curves, quality
// multipliers, rarity chances, variant bonuses, evolution multiplier, wait
// times). Changing those values is the only supported way to rebalance the
// simulation.
package catalog
