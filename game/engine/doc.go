// Package engine provides the core game logic for Critter Catch.
//
// The engine package implements the two collection loops:
//   - Fishing: cast at a location, reel in a rolled catch, sell it
//   - Pets: buy an egg, incubate it, hatch it, level it and evolve it
//
// Core Types:
//
// PlayerState holds everything a player owns and is the receiver of every
// rule (Cast, Reel, Hatch, Evolve, Equip, ...). Rules take the catalog, a
// Roller and the current time as arguments so they stay deterministic under
// test. GameEngine binds one PlayerState to a catalog, a random source and a
// clock, and records each action in the activity log.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(catalog.Default(), "player-1")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if _, err := gameEngine.Cast("pond"); err != nil {
//		log.Printf("cast refused: %v (%s)", err, engine.CodeOf(err))
//	}
//	catch, err := gameEngine.Reel()
//
// Failures:
//
// A rejected action returns an *Error carrying a Code such as LEVEL_TOO_LOW or
// INVENTORY_FULL. Coins, inventories, fishing and pets stay exactly as they
// were. The GameEngine still records the attempt: it appends a failed
// ActivityEntry to History and counts it in TotalActions.
package engine
