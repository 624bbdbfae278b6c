// Package websocket pushes live Critter Catch updates to browser clients.
//
// A single Hub owns every connection. Clients join a session with
// /ws?session=<id> and only receive messages for that session. The HTTP
// layer publishes after each action:
//
//	{"session_id": "ab12", "event": "reel", "state": {...}, "data": {...action result...}}
//
// State snapshots are published with event "state_update" and no data.
//
// Publishing never blocks the caller. Messages are encoded on the caller's
// goroutine and queued for the hub; when the queue is full the message is
// dropped and a warning is logged. A client whose send buffer is full is
// disconnected.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastAction(sessionID, result)
package websocket
