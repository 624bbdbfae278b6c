// Package mcp exposes Critter Catch to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON reply is rendered as text for the agent. It holds
// no game state of its own.
//
// Tools:
//   - Sessions: create_session, list_sessions, get_session, list_catalogs, reset_player
//   - Views: player_state, collection, activity_history, can_start, game_instructions
//   - Fishing: cast, reel, abandon_fishing, sell_fish, sell_all
//   - Shop: buy_rod, buy_bait, buy_egg
//   - Pets: hatch, evolve_pet, equip_pet, unequip_pet, lock_pet, unlock_pet, release_pet
//
// Rejected actions are returned as normal text results carrying the
// rejection code, so an agent can read LEVEL_TOO_LOW or INSUFFICIENT_FUNDS
// and adjust. Transport failures and unknown sessions come back as tool
// errors.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
