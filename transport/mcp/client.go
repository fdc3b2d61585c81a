package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
	"github.com/wricardo/mcp-training/liarheads/game/service"
)

// ServerName and ServerVersion identify the MCP server to clients.
const (
	ServerName    = "Liar Heads"
	ServerVersion = "1.0.0"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Liar Heads - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Walk a token from the start edge of a grid to the far (goal) row. Each turn a
head is drawn that moves you and then announces a direction. Truth heads
announce the move that happened, liars announce its opposite, and repeat heads
copy the honesty of the previous head.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current game state and grid
- advance: Play one turn, optionally forcing a direction - requires intent explanation
- plan_turn: Draw the next turn and show where it would go, without moving
- commit_turn: Take the turn staged by plan_turn
- restart_game: Start the game over
- turn_history: View past turns and head statistics
- legal_moves: Directions that can be forced right now
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on advance serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use, as returned by list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state with the grid (goal row on top)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance",
		Description: "Play one turn. Without a direction the heads pick the move; with one the move is forced, and rejected without penalty if it would leave the grid.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames(),
					"description": "Direction to force (optional)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this turn (serves as a rubber duck to help explain your reasoning)",
				},
				"restart": map[string]interface{}{
					"type":        "boolean",
					"description": "Restart the game before playing the turn",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvance)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_turn",
		Description: "Draw the next turn without moving. The grid marks the staged cell with *; call commit_turn to take it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames(),
					"description": "Direction to force (optional)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePlanTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "commit_turn",
		Description: "Take the turn staged by plan_turn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleCommitTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart_game",
		Description: "Restart the game from the start cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get turn history and head statistics for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List the directions that can be forced from the current cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

func directionNames() []string {
	names := make([]string, 0, len(engine.AllDirections()))
	for _, d := range engine.AllDirections() {
		names = append(names, d.String())
	}
	return names
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call failed")
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := "playing"
		if s.GameState != nil {
			status = fmt.Sprintf("%s, turn %d", s.GameState.Status(), s.GameState.Turn)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	restart, _ := args["restart"].(bool)

	// intent is only for the caller's benefit
	if intent, _ := args["intent"].(string); intent != "" {
		log.Debug().Str("session", sessionID).Str("intent", intent).Msg("advance intent")
	}

	body := map[string]interface{}{"restart": restart}
	if direction != "" {
		body["direction"] = direction
	}

	var result service.AdvanceResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/advance"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAdvanceResult(&result)), nil
}

func (c *Client) handlePlanTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if direction, _ := args["direction"].(string); direction != "" {
		body["direction"] = direction
	}

	var result service.PlanResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/plan"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Planned turn %d: %s\n", result.Turn, result.Message)
	if result.GameState != nil {
		text += "\n" + formatGameState(result.GameState)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleCommitTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.AdvanceResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/commit"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatAdvanceResult(&result)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/restart"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprint(int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprint(int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var moves service.LegalMoves
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/moves"), nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatLegalMoves(&moves)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %d rows x %d columns\n\n",
			config.Name, config.ConfigID, config.Description, config.Length, config.Width)
	}

	return mcp.NewToolResultText(b.String()), nil
}

const gameInstructions = `Liar Heads - Complete Instructions

GAME OBJECTIVE:
Move your token (@) from the start edge to the goal row (=). The grid is
printed with the goal row on top, so "forward" moves up the printout.

HOW A TURN WORKS:
1. A head is drawn: truth, lie or repeat.
2. The head moves you one cell in a direction that keeps you on the grid.
   "up" and "down" are decoys: they never move you.
3. The head announces a direction:
   • truth heads announce the move that happened
   • lie heads announce the opposite of the move that happened
   • repeat heads behave like the previous head (truth after truth, lie after lie)
4. A lying head never moves you in a direction whose opposite would be off
   the grid, so its announcement always names a legal move.

FORCING MOVES:
• advance with a direction forces that move instead of letting the head pick.
• A forced move that would leave the grid is rejected: nothing changes and no
  turn is used. Check legal_moves first.
• Forced decoys (up/down) are always legal.
• A lying head that is forced next to an edge may have no legal direction to
  announce; it stays silent.

DIRECTIONS:
• forward  - one row toward the goal
• backward - one row toward the start
• left / right - one column sideways
• up / down - decoys, no movement

STRATEGY FOR AI AGENTS:
• The fastest win is forcing forward every turn: length-1 turns from row 0.
• To play "fair", let the heads choose and use turn_history to infer which
  heads lie. Repeat heads make a long run of liars easy to spot.
• The first head of a game is never a repeat head.

VICTORY CONDITIONS:
The game is won the moment the token reaches the goal row. Further turns are
refused until the game is restarted.

Good luck reading the heads!`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	if session.Seed != nil {
		fmt.Fprintf(&b, "Seed: %d\n", *session.Seed)
	}
	fmt.Fprintf(&b, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Last Accessed: %s\n", session.LastAccessedAt.Format(time.RFC3339))
	if session.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(session.GameState))
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "Game state unavailable"
	}

	var b strings.Builder
	if state.Won {
		b.WriteString("🎉 VICTORY!\n")
	}
	fmt.Fprintf(&b, "Position: (row %d, col %d)\n", state.Position.Row, state.Position.Col)
	fmt.Fprintf(&b, "Turn: %d\n", state.Turn)
	fmt.Fprintf(&b, "Rows to goal: %d\n", engine.RowsToGoal(state))
	if state.Rejected > 0 {
		fmt.Fprintf(&b, "Rejected forced moves: %d\n", state.Rejected)
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	if state.Length > 0 && state.Width > 0 {
		b.WriteString("\nGrid (goal row on top):\n")
		for _, row := range engine.RenderGrid(state) {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatAdvanceResult(result *service.AdvanceResult) string {
	var b strings.Builder

	for _, ev := range result.Events {
		if ev.Type == service.EventRestart {
			b.WriteString("↺ Game restarted\n")
		}
	}

	if t := result.Turn; t != nil {
		if result.Success {
			fmt.Fprintf(&b, "✓ Turn %d: moved %s\n", t.Turn, t.Actual)
			fmt.Fprintf(&b, "Head: %s", t.Head)
			if t.Head == engine.Repeat {
				fmt.Fprintf(&b, " (acting as %s)", t.Resolved)
			}
			b.WriteString("\n")
			if t.HasAnnouncement() {
				fmt.Fprintf(&b, "Announced: %s\n", t.Announced)
			} else {
				b.WriteString("Announced: nothing\n")
			}
			if t.Forced {
				b.WriteString("(forced move)\n")
			}
			if t.Description != "" {
				fmt.Fprintf(&b, "%s\n", t.Description)
			}
		} else {
			fmt.Fprintf(&b, "✗ Move rejected: %s\n", t.Actual)
		}
	}

	if result.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Message)
	}

	if len(result.PossibleMoves) > 0 {
		names := make([]string, 0, len(result.PossibleMoves))
		for _, d := range result.PossibleMoves {
			names = append(names, d.String())
		}
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(names, ", "))
	}

	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatLegalMoves(moves *service.LegalMoves) string {
	if moves.Won {
		return "The game is won. Restart to play again.\n"
	}

	join := func(ds []engine.Direction) string {
		if len(ds) == 0 {
			return "none"
		}
		names := make([]string, 0, len(ds))
		for _, d := range ds {
			names = append(names, d.String())
		}
		return strings.Join(names, ", ")
	}

	return fmt.Sprintf("Position: (row %d, col %d)\nRows to goal: %d\nLegal: %s\nBanned: %s\n",
		moves.Position.Row, moves.Position.Col, moves.RowsToGoal, join(moves.Possible), join(moves.Banned))
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Turn History (Page %d/%d), Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	for _, rec := range history.Turns {
		announced := rec.Announced.String()
		if rec.Announced == engine.NoDirection {
			announced = "nothing"
		}
		head := rec.Head.String()
		if rec.Head == engine.Repeat {
			head = fmt.Sprintf("repeat→%s", rec.Resolved)
		}
		forced := ""
		if rec.Forced {
			forced = " [forced]"
		}
		fmt.Fprintf(&b, "%d. %s head moved %s, announced %s (%d,%d)→(%d,%d)%s\n",
			rec.Turn, head, rec.Actual, announced,
			rec.From.Row, rec.From.Col, rec.To.Row, rec.To.Col, forced)
	}

	st := history.Stats
	if st.Turns > 0 {
		fmt.Fprintf(&b, "\nHeads: truth %d, lie %d, repeat %d. Lies: %d (%.0f%%). Decoys: %d. Silent: %d.\n",
			st.Kinds[engine.Truth], st.Kinds[engine.Lie], st.Kinds[engine.Repeat],
			st.Lies, st.LieRate()*100, st.Decoys, st.Silent)
	}
	return b.String()
}
