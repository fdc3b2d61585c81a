// Package websocket provides WebSocket transport for liar heads.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Broadcasting each turn and state change to watchers of a session
//   - Connection lifecycle management
//
// Architecture:
//
// A central Hub tracks connections by session ID. Each connection is served
// by a read goroutine, which only keeps the connection alive, and a write
// goroutine that delivers queued messages and pings.
//
// Message Protocol:
//
// Messages are JSON objects sent from server to client:
//
//	{"session_id": "a1b2", "event": "turn", "turn": {...}, "game_state": {...}, "grid": [...]}
//
// The event is "turn" after a turn was played and "state_update" after a
// restart or any other change. Incoming client messages are ignored.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Slow clients whose send buffer fills up are disconnected rather than
// blocking broadcasts.
package websocket
