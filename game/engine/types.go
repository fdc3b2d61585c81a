package engine

const (
	// Validation constants
	MinGridSize = 1
	MaxGridSize = 100
)

// Outcome describes what a turn did.
type Outcome string

const (
	OutcomeMoved             Outcome = "moved"
	OutcomeIllegalForcedMove Outcome = "illegal_forced_move"
)

// Position is a (row, column) cell. Row 0 is the start edge and row
// length-1 is the goal row.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Move returns the position reached by applying d.
func (p Position) Move(d Direction) Position {
	dRow, dCol := Displacement(d)
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Labels holds optional display names keyed by head kind and direction name.
type Labels struct {
	Heads      map[string]string `json:"heads,omitempty" yaml:"heads,omitempty"`
	Directions map[string]string `json:"directions,omitempty" yaml:"directions,omitempty"`
}

// Messages holds the texts shown to the player.
type Messages struct {
	Welcome        string `json:"welcome" yaml:"welcome"`
	Victory        string `json:"victory" yaml:"victory"`
	Announce       string `json:"announce,omitempty" yaml:"announce,omitempty"`
	NoAnnouncement string `json:"no_announcement,omitempty" yaml:"no_announcement,omitempty"`
	IllegalMove    string `json:"illegal_move,omitempty" yaml:"illegal_move,omitempty"`
}

// GameConfig is the read-only snapshot a game is built from.
type GameConfig struct {
	Name             string             `json:"name" yaml:"name"`
	Description      string             `json:"description" yaml:"description"`
	Length           int                `json:"length" yaml:"length"`
	Width            int                `json:"width" yaml:"width"`
	Start            Position           `json:"start" yaml:"start"`
	DirectionWeights map[string]float64 `json:"direction_weights" yaml:"direction_weights"`
	Labels           Labels             `json:"labels" yaml:"labels"`
	UsefulTraits     []string           `json:"useful_traits,omitempty" yaml:"useful_traits,omitempty"` // index-aligned with HeadKinds()
	UselessTraits    []string           `json:"useless_traits,omitempty" yaml:"useless_traits,omitempty"`
	Messages         Messages           `json:"messages" yaml:"messages"`
}

// DirectionLabel returns the display name for d.
func (c *GameConfig) DirectionLabel(d Direction) string {
	if c != nil {
		if label, ok := c.Labels.Directions[d.String()]; ok && label != "" {
			return label
		}
	}
	return d.String()
}

// HeadLabel returns the display name for k.
func (c *GameConfig) HeadLabel(k HeadKind) string {
	if c != nil {
		if label, ok := c.Labels.Heads[k.String()]; ok && label != "" {
			return label
		}
	}
	return k.String()
}

// TurnRecord is one committed turn.
type TurnRecord struct {
	Turn      int       `json:"turn"`
	Head      HeadKind  `json:"head"`
	Resolved  HeadKind  `json:"resolved"`
	Announced Direction `json:"announced"`
	Actual    Direction `json:"actual"`
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Forced    bool      `json:"forced,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

// TurnResult is what the presentation layer receives after a turn.
type TurnResult struct {
	Turn           int         `json:"turn"`
	Outcome        Outcome     `json:"outcome"`
	Head           HeadKind    `json:"head"`
	HeadLabel      string      `json:"head_label,omitempty"`
	Resolved       HeadKind    `json:"resolved"`
	Lying          bool        `json:"lying"`
	Actual         Direction   `json:"actual"`
	Announced      Direction   `json:"announced"`
	AnnouncedLabel string      `json:"announced_label,omitempty"`
	Forced         bool        `json:"forced,omitempty"`
	From           Position    `json:"from"`
	To             Position    `json:"to"`
	Banned         []Direction `json:"banned"`
	Won            bool        `json:"won"`
	Description    string      `json:"description,omitempty"`
	Message        string      `json:"message"`
}

// Moved reports whether the turn was committed (decoys included).
func (r *TurnResult) Moved() bool {
	return r.Outcome == OutcomeMoved
}

// HasAnnouncement reports whether the head announced a direction.
func (r *TurnResult) HasAnnouncement() bool {
	return r.Announced != NoDirection
}

// GameState is the mutable state of one game.
type GameState struct {
	Position     Position     `json:"position"`
	Pending      *Position    `json:"pending,omitempty"` // staged by Plan, cleared by Commit
	Length       int          `json:"length"`
	Width        int          `json:"width"`
	LastHead     HeadKind     `json:"last_head"`
	LastResolved HeadKind     `json:"last_resolved"`
	Won          bool         `json:"won"`
	Turn         int          `json:"turn"`
	Rejected     int          `json:"rejected_moves"`
	History      []TurnRecord `json:"history"`
	LastTurn     *TurnResult  `json:"last_turn,omitempty"`
	Message      string       `json:"message"`
	ConfigName   string       `json:"config_name"`
}

// Status returns "won" or "playing".
func (gs *GameState) Status() string {
	if gs.Won {
		return "won"
	}
	return "playing"
}
