// Package mcp provides the Model Context Protocol server for liar heads.
//
// The server is a thin client of the REST API: every tool call becomes one
// or two HTTP requests and the JSON response is rendered as text for the
// agent.
//
// MCP Tools:
//   - create_session: Create new game session with config selection
//   - list_sessions: List all active sessions
//   - get_session: Get specific session details
//   - game_state: Get current game state with grid visualization
//   - advance: Play one turn, optionally forcing a direction
//   - restart_game: Start the game over
//   - turn_history: Retrieve turn history and head statistics
//   - legal_moves: Directions that may be forced from the current cell
//   - list_configs: List available game configurations
//   - game_instructions: Rules and strategy notes
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: main mounts the server at /mcp and feeds request bodies to
//     HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
