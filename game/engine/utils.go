package engine

import (
	"strings"
)

// RowsToGoal returns how many Forward moves separate the player from the
// goal row.
func RowsToGoal(state *GameState) int {
	n := state.Length - 1 - state.Position.Row
	if n < 0 {
		return 0
	}
	return n
}

// HeadStats summarizes the heads of a game.
type HeadStats struct {
	Turns  int              `json:"turns"`
	Kinds  map[HeadKind]int `json:"kinds"`
	Lies   int              `json:"lies"`
	Decoys int              `json:"decoys"`
	Silent int              `json:"silent"` // turns with no announcement
	Forced int              `json:"forced"`
}

// LieRate returns the fraction of turns whose head lied.
func (s HeadStats) LieRate() float64 {
	if s.Turns == 0 {
		return 0
	}
	return float64(s.Lies) / float64(s.Turns)
}

// CountHeads tallies the committed turns in history.
func CountHeads(history []TurnRecord) HeadStats {
	stats := HeadStats{Kinds: make(map[HeadKind]int, len(HeadKinds()))}
	for _, rec := range history {
		stats.Turns++
		stats.Kinds[rec.Head]++
		if rec.Resolved == Lie {
			stats.Lies++
		}
		if rec.Actual.IsDecoy() {
			stats.Decoys++
		}
		if rec.Announced == NoDirection {
			stats.Silent++
		}
		if rec.Forced {
			stats.Forced++
		}
	}
	return stats
}

// Grid cell glyphs used by RenderGrid.
const (
	GlyphEmpty   = '.'
	GlyphGoal    = '='
	GlyphPlayer  = '@'
	GlyphPending = '*'
)

// RenderGrid draws the board with the goal row at the top, one string per
// row. A staged pending position is marked when it differs from the player.
func RenderGrid(state *GameState) []string {
	rows := make([]string, 0, state.Length)
	for r := state.Length - 1; r >= 0; r-- {
		var b strings.Builder
		for c := 0; c < state.Width; c++ {
			p := Position{Row: r, Col: c}
			switch {
			case p == state.Position:
				b.WriteRune(GlyphPlayer)
			case state.Pending != nil && p == *state.Pending:
				b.WriteRune(GlyphPending)
			case state.AtGoal(p):
				b.WriteRune(GlyphGoal)
			default:
				b.WriteRune(GlyphEmpty)
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}
