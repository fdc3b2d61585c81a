// Package api provides HTTP REST API handlers for liar heads.
//
// The api package implements:
//   - Session management endpoints
//   - Turn endpoints, with optional forced directions
//   - Configuration listing, lookup and upload
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Compact view of many sessions (?sessionIds=a,b or ?configName=x)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/advance - Play one turn
//   - POST /api/sessions/{id}/restart - Start the game over
//   - GET /api/sessions/{id}/history - Turn history (?page&limit&order)
//   - GET /api/sessions/{id}/moves - Directions that may be forced now
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//   - POST /api/configs - Save a configuration (?id= names the file)
//
// Advance Request:
//
//	{
//	  "direction": "forward|backward|left|right|up|down", // optional, forces the move
//	  "restart": true|false                               // optional, restart before the turn
//	}
//
// The response carries the turn (head, resolved kind, actual and announced
// directions, description), the new state, a rendered grid and the
// directions that can be forced next. A forced direction that would leave
// the grid is not an error: the response has "success": false and the
// turn outcome "illegal_forced_move".
//
// Error Handling:
//
// Errors are returned as JSON with the HTTP status code repeated in the body:
//
//	{
//	  "error": "session not found: zzzz",
//	  "code": 404
//	}
//
// Unknown sessions and configs map to 404, malformed input to 400 and turns
// requested after the game was won to 409.
package api
