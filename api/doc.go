// Package api provides the REST API for Critter Catch.
//
// Every route is session-scoped except catalog management and health:
//
//	POST   /api/sessions                                  create (body: {"catalog_id"})
//	GET    /api/sessions                                  list (?sort=created|accessed&order=asc|desc&limit=N)
//	GET    /api/sessions/unified                          leaderboard (?sessionIds=a,b or ?catalogId=lake)
//	GET    /api/sessions/{id}                             session info with player state
//	DELETE /api/sessions/{id}                             delete
//	GET    /api/sessions/{id}/state                       player state
//	POST   /api/sessions/{id}/reset                       start over
//	GET    /api/sessions/{id}/history                     activity log (?page&limit&order&action)
//	GET    /api/sessions/{id}/collection                  discovery progress
//	GET    /api/sessions/{id}/can-start                   gate check (?location=pond or ?egg=basic_egg)
//	POST   /api/sessions/{id}/fishing/cast                body: {"location_id"}
//	POST   /api/sessions/{id}/fishing/reel
//	POST   /api/sessions/{id}/fishing/abandon
//	POST   /api/sessions/{id}/fishing/sell                body: {"index"}
//	POST   /api/sessions/{id}/fishing/sell-all
//	POST   /api/sessions/{id}/shop/rod                    body: {"rod_id"}
//	POST   /api/sessions/{id}/shop/bait                   body: {"bait_id"}
//	POST   /api/sessions/{id}/shop/egg                    body: {"egg_id"}
//	POST   /api/sessions/{id}/incubators/{incubatorID}/hatch
//	POST   /api/sessions/{id}/pets/{petID}/{evolve|equip|unequip|lock|unlock}
//	DELETE /api/sessions/{id}/pets/{petID}                release
//	GET    /api/catalogs                                  list catalogs
//	POST   /api/catalogs                                  save a catalog (?id= overrides the file name)
//	GET    /api/catalogs/{name}                           catalog contents
//	GET    /ws?session={id}                               live updates
//	GET    /health
//
// Action routes always answer 200 with a service.ActionResult. A rule
// rejection sets success false and carries the code, so clients branch on
// the body rather than the status. Non-2xx statuses are reserved for bad
// requests (400), unknown sessions or catalogs (404) and server faults (500),
// with a body of {"error": "..."}.
//
// Each action is published to websocket clients of the same session and
// logged as a single line such as
//
//	[REEL] session=ab12 status=OK coins=120 level=2
package api
