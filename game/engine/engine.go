package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/wricardo/mcp-training/liarheads/game/choice"
)

var (
	ErrGameOver  = errors.New("game is already won")
	ErrStalePlan = errors.New("turn plan no longer matches the game state")
	ErrNilPlan   = errors.New("turn plan is nil")

	ErrNoPendingPlan = errors.New("no turn is planned")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Reset() *GameState
	IsWon() bool
	GetPosition() Position

	// Turn operations
	Advance(forced *Direction) (*TurnResult, error)
	Plan(forced *Direction) (*TurnPlan, error)
	Commit(plan *TurnPlan) (*TurnResult, error)
	CommitPending() (*TurnResult, error)
	PendingPlan() *TurnPlan
	CanMove(direction Direction) bool
	BannedDirections() []Direction
	GetPossibleMoves() []Direction

	// Configuration
	GetConfig() *GameConfig

	// History
	GetHistory() []TurnRecord
	GetLastTurn() *TurnRecord
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state      *GameState
	config     *GameConfig
	directions *choice.Choice[Direction]
	heads      *choice.Choice[HeadKind]
	useless    *choice.Choice[string] // nil when the config has no useless traits
	staged     *TurnPlan
	src        choice.Source
	now        func() time.Time
}

// EngineOption customizes a GameEngine.
type EngineOption func(*GameEngine)

// WithSource makes every draw of the engine come from src.
func WithSource(src choice.Source) EngineOption {
	return func(e *GameEngine) {
		e.src = src
	}
}

// WithSeed makes the engine's draws reproducible.
func WithSeed(seed uint64) EngineOption {
	return WithSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithClock overrides the time source used for turn timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *GameEngine) {
		e.now = now
	}
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig, opts ...EngineOption) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	var choiceOpts []choice.Option
	if e.src != nil {
		choiceOpts = append(choiceOpts, choice.WithSource(e.src))
	}

	var err error
	if e.directions, err = newDirectionChoice(config, choiceOpts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if e.heads, err = choice.NewUniform("head kind", HeadKinds(), choiceOpts...); err != nil {
		return nil, err
	}
	if len(config.UselessTraits) > 0 {
		if e.useless, err = choice.NewUniform("useless trait", config.UselessTraits, choiceOpts...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	e.state = InitGameStateFromConfig(config)
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults(opts ...EngineOption) (*GameEngine, error) {
	return NewEngine(DefaultGameConfig(), opts...)
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Reset discards the current game and starts a fresh one
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	e.staged = nil
	return e.state
}

// IsWon returns whether the player has reached the goal row
func (e *GameEngine) IsWon() bool {
	return e.state.Won
}

// GetPosition returns the current player position
func (e *GameEngine) GetPosition() Position {
	return e.state.Position
}

// GetConfig returns the game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// CanMove reports whether direction is a legal actual move right now
func (e *GameEngine) CanMove(direction Direction) bool {
	if e.state.Won || !direction.Valid() {
		return false
	}
	return !containsDirection(e.state.BannedDirections(), direction)
}

// BannedDirections returns the movement bans at the current position
func (e *GameEngine) BannedDirections() []Direction {
	return e.state.BannedDirections()
}

// GetPossibleMoves returns every direction that can be forced right now
func (e *GameEngine) GetPossibleMoves() []Direction {
	possible := []Direction{}
	for _, d := range AllDirections() {
		if e.CanMove(d) {
			possible = append(possible, d)
		}
	}
	return possible
}

// GetHistory returns the committed turns of the current game
func (e *GameEngine) GetHistory() []TurnRecord {
	return e.state.History
}

// GetLastTurn returns the last committed turn, or nil if there is none
func (e *GameEngine) GetLastTurn() *TurnRecord {
	if len(e.state.History) == 0 {
		return nil
	}
	return &e.state.History[len(e.state.History)-1]
}

// Advance plays one turn. forced, when non-nil, replaces the direction
// draw. A forced direction that is banned leaves the game untouched and
// reports OutcomeIllegalForcedMove without an error.
func (e *GameEngine) Advance(forced *Direction) (*TurnResult, error) {
	plan, err := e.Plan(forced)
	if err != nil {
		return nil, err
	}
	return e.Commit(plan)
}

// AdvanceN plays turns until n are committed, the game is won, or a forced
// move is rejected. forced may be shorter than n; missing entries are drawn.
func (e *GameEngine) AdvanceN(n int, forced []Direction) ([]*TurnResult, error) {
	results := make([]*TurnResult, 0, n)
	for i := 0; i < n && !e.state.Won; i++ {
		var f *Direction
		if i < len(forced) {
			d := forced[i]
			f = &d
		}
		res, err := e.Advance(f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if !res.Moved() {
			break
		}
	}
	return results, nil
}
