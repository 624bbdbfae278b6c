// Package service provides the business logic layer for Critter Catch.
//
// The service package implements:
//   - Multi-session player management
//   - Catalog selection per session
//   - Action dispatch to the game engine with uniform results
//   - Paginated activity history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, persistence and lifecycle.
// CatalogManager loads, lists and saves content catalogs.
//
// Architecture:
//
// The service layer sits between the transports (HTTP/WebSocket/MCP) and the
// game engine. Each session owns one engine and therefore one player. Actions
// that the rules reject are not errors at this layer: they come back as an
// ActionResult with Success false and the engine's rejection code, so every
// transport reports them the same way. Errors are reserved for unknown
// sessions and infrastructure failures.
//
// Usage:
//
//	catalogMgr, _ := config.NewManager("catalogs")
//	sessionMgr := session.NewManager()
//	gameService := service.NewGameService(sessionMgr, catalogMgr)
//
//	info, err := gameService.CreateSession(ctx, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Cast(ctx, info.ID, "pond")
//	if err == nil && !result.Success {
//		fmt.Println(result.Code, result.Message)
//	}
package service
