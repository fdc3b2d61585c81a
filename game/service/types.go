package service

import (
	"time"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           *uint64            `json:"seed,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// AdvanceResult contains the result of one turn
type AdvanceResult struct {
	Success       bool               `json:"success"` // false when a forced move was rejected
	Turn          *engine.TurnResult `json:"turn"`
	GameState     *engine.GameState  `json:"game_state"`
	Message       string             `json:"message"`
	Events        []GameEvent        `json:"events,omitempty"`
	PossibleMoves []engine.Direction `json:"possible_moves"`
	Grid          []string           `json:"grid,omitempty"`
}

// PlanResult describes a staged turn. GameState.Pending holds Target until
// the turn is committed.
type PlanResult struct {
	Turn      int               `json:"turn"`
	Outcome   engine.Outcome    `json:"outcome"`
	Forced    bool              `json:"forced,omitempty"`
	From      engine.Position   `json:"from"`
	Target    engine.Position   `json:"target"`
	GameState *engine.GameState `json:"game_state"`
	Grid      []string          `json:"grid,omitempty"`
	Message   string            `json:"message"`
}

// Event types
const (
	EventRestart     = "restart"
	EventTurn        = "turn"
	EventIllegalMove = "illegal_move"
	EventSilentHead  = "silent_head"
	EventVictory     = "victory"
)

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// LegalMoves lists what can be forced from the current position
type LegalMoves struct {
	Position   engine.Position    `json:"position"`
	Possible   []engine.Direction `json:"possible"`
	Banned     []engine.Direction `json:"banned"`
	RowsToGoal int                `json:"rows_to_goal"`
	Won        bool               `json:"won"`
}

// HistoryOptions configures turn history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated turn history
type HistoryResponse struct {
	Turns       []engine.TurnRecord `json:"turns"`
	TotalTurns  int                 `json:"total_turns"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
	Stats       engine.HeadStats    `json:"stats"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Length      int    `json:"length"`
	Width       int    `json:"width"`
}
