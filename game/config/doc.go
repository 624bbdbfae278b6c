// Package config loads Critter Catch content catalogs from disk.
//
// Catalogs live in a directory as JSON (.json) or YAML (.yaml, .yml) files.
// The file name without extension is the catalog id used when creating a
// session. A builtin catalog named "default" is always available; a file
// called default.json or default.yaml replaces it.
//
// Usage:
//
//	manager, err := config.NewManager("catalogs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	lake, err := manager.LoadCatalog("lake")
//	catalogs, err := manager.ListCatalogs()
//
// Every catalog is checked with catalog.Validate before it is cached or
// saved. Invalid files are skipped when listing.
package config
