package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(sess *Session) string {
	if sess.ConfigID != "" {
		return sess.ConfigID
	}
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == sess.Config.Name {
				return cfg.ConfigID
			}
		}
	}
	if sess.Config.Name == "" {
		return "default"
	}
	return sess.Config.Name
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess),
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      snapshot(sess.Engine.GetState()),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: %q, available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: %q, use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate the ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.ConfigID = configName

	log.Info().Str("session", session.ID).Str("config", config.Name).Msg("session created")
	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Advance plays one turn for a session, optionally restarting first
func (s *gameServiceImpl) Advance(ctx context.Context, sessionID string, forced *engine.Direction, restart bool) (*AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	// Reject bad input before a restart can discard the game.
	if forced != nil && !forced.Valid() {
		return nil, fmt.Errorf("advance session %s: %w: %d", sessionID, engine.ErrUnknownDirection, int(*forced))
	}

	events := []GameEvent{}
	if restart {
		state := sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      EventRestart,
			Message:   "Game restarted",
			Timestamp: time.Now(),
			Position:  state.Position,
		})
	}

	turn, err := sess.Engine.Advance(forced)
	if err != nil {
		return nil, fmt.Errorf("advance session %s: %w", sessionID, err)
	}
	return s.turnResult(sessionID, sess, turn, events), nil
}

// turnResult builds the response for a committed or rejected turn and logs it.
func (s *gameServiceImpl) turnResult(sessionID string, sess *Session, turn *engine.TurnResult, events []GameEvent) *AdvanceResult {
	state := sess.Engine.GetState()
	result := &AdvanceResult{
		Success:       turn.Moved(),
		Turn:          turn,
		GameState:     snapshot(state),
		Message:       turn.Message,
		Events:        append(events, turnEvents(turn)...),
		PossibleMoves: sess.Engine.GetPossibleMoves(),
		Grid:          engine.RenderGrid(state),
	}

	log.Debug().
		Str("session", sessionID).
		Int("turn", turn.Turn).
		Str("outcome", string(turn.Outcome)).
		Stringer("head", turn.Head).
		Stringer("actual", turn.Actual).
		Stringer("announced", turn.Announced).
		Int("from_row", turn.From.Row).Int("from_col", turn.From.Col).
		Int("to_row", turn.To.Row).Int("to_col", turn.To.Col).
		Bool("won", turn.Won).
		Msg("turn")
	if turn.Won {
		log.Info().Str("session", sessionID).Int("turn", turn.Turn).Msg("game won")
	}
	return result
}

// PlanTurn draws the next turn and stages it without moving the player
func (s *gameServiceImpl) PlanTurn(ctx context.Context, sessionID string, forced *engine.Direction) (*PlanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	plan, err := sess.Engine.Plan(forced)
	if err != nil {
		return nil, fmt.Errorf("plan session %s: %w", sessionID, err)
	}

	state := sess.Engine.GetState()
	result := &PlanResult{
		Turn:      plan.Turn,
		Outcome:   plan.Outcome,
		Forced:    plan.Forced,
		From:      plan.From,
		Target:    plan.Target,
		GameState: snapshot(state),
		Grid:      engine.RenderGrid(state),
	}
	if plan.Outcome == engine.OutcomeMoved {
		result.Message = fmt.Sprintf("About to move to (%d,%d); commit to take the turn", plan.Target.Row, plan.Target.Col)
	} else {
		result.Message = fmt.Sprintf("Cannot move %s from here; committing records the rejection", plan.Actual)
	}

	log.Debug().
		Str("session", sessionID).
		Int("turn", plan.Turn).
		Str("outcome", string(plan.Outcome)).
		Int("target_row", plan.Target.Row).Int("target_col", plan.Target.Col).
		Msg("turn planned")
	return result, nil
}

// CommitTurn commits the turn staged by PlanTurn
func (s *gameServiceImpl) CommitTurn(ctx context.Context, sessionID string) (*AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	turn, err := sess.Engine.CommitPending()
	if err != nil {
		return nil, fmt.Errorf("commit session %s: %w", sessionID, err)
	}
	return s.turnResult(sessionID, sess, turn, []GameEvent{}), nil
}

// turnEvents generates events from a turn
func turnEvents(turn *engine.TurnResult) []GameEvent {
	now := time.Now()
	if !turn.Moved() {
		return []GameEvent{{
			Type:      EventIllegalMove,
			Message:   turn.Message,
			Timestamp: now,
			Position:  turn.From,
		}}
	}

	events := []GameEvent{{
		Type:      EventTurn,
		Message:   fmt.Sprintf("Turn %d: %s head, moved %s", turn.Turn, turn.Head, turn.Actual),
		Timestamp: now,
		Position:  turn.To,
	}}
	if !turn.HasAnnouncement() {
		events = append(events, GameEvent{
			Type:      EventSilentHead,
			Message:   "The head had no legal direction to announce",
			Timestamp: now,
			Position:  turn.To,
		})
	}
	if turn.Won {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   turn.Message,
			Timestamp: now,
			Position:  turn.To,
		})
	}
	return events
}

// Restart discards the session's game and starts a fresh one
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.Reset()
	log.Info().Str("session", sessionID).Msg("game restarted")
	return snapshot(state), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess.Engine.GetState()), nil
}

// GetLegalMoves reports which directions can be forced right now
func (s *gameServiceImpl) GetLegalMoves(ctx context.Context, sessionID string) (*LegalMoves, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	return &LegalMoves{
		Position:   state.Position,
		Possible:   sess.Engine.GetPossibleMoves(),
		Banned:     sess.Engine.BannedDirections(),
		RowsToGoal: engine.RowsToGoal(state),
		Won:        state.Won,
	}, nil
}

// GetTurnHistory returns paginated turn history
func (s *gameServiceImpl) GetTurnHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	turns := []engine.TurnRecord{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			turns = append(turns, history[i])
		}
	} else if start < total {
		turns = append(turns, history[start:end]...)
	}

	return &HistoryResponse{
		Turns:       turns,
		TotalTurns:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
		Stats:       engine.CountHeads(history),
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	if err := s.configs.SaveConfig(configName, config); err != nil {
		return err
	}
	log.Info().Str("config", configName).Msg("config saved")
	return nil
}

// getSession marks the session accessed and returns the manager's copy of
// it. Only the copy's fields are read here; the manager owns the original.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Warn().Err(err).Str("session", sessionID).Msg("update last accessed")
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return sess, nil
}

// snapshot copies the state so callers can serialize it outside the lock.
func snapshot(state *engine.GameState) *engine.GameState {
	cp := *state
	cp.History = append([]engine.TurnRecord{}, state.History...)
	if state.Pending != nil {
		p := *state.Pending
		cp.Pending = &p
	}
	if state.LastTurn != nil {
		lt := *state.LastTurn
		lt.Banned = append([]engine.Direction{}, state.LastTurn.Banned...)
		cp.LastTurn = &lt
	}
	return &cp
}
