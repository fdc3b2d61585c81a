package engine

// InBounds reports whether p lies on a length x width grid.
func InBounds(p Position, length, width int) bool {
	return p.Row >= 0 && p.Row < length && p.Col >= 0 && p.Col < width
}

// MovementBans returns the cardinal directions that would take a player at
// p off the grid. Decoys never move the player and are never banned.
func MovementBans(p Position, length, width int) []Direction {
	bans := []Direction{}
	for _, d := range CardinalDirections() {
		if !InBounds(p.Move(d), length, width) {
			bans = append(bans, d)
		}
	}
	return bans
}

// ExtendForLie adds the inverse of every banned direction. A lying head
// announces the inverse of the actual move, so an actual move drawn outside
// this set always inverts to a direction that is not banned.
func ExtendForLie(bans []Direction) []Direction {
	extended := append([]Direction{}, bans...)
	for _, d := range bans {
		inv := Invert(d)
		if !containsDirection(extended, inv) {
			extended = append(extended, inv)
		}
	}
	return extended
}

// CanMoveTo reports whether p is on this game's grid.
func (gs *GameState) CanMoveTo(p Position) bool {
	return InBounds(p, gs.Length, gs.Width)
}

// BannedDirections returns the movement bans at the current position.
func (gs *GameState) BannedDirections() []Direction {
	return MovementBans(gs.Position, gs.Length, gs.Width)
}

// AtGoal reports whether p is on the goal row.
func (gs *GameState) AtGoal(p Position) bool {
	return p.Row == gs.Length-1
}

// AddTurnToHistory appends a committed turn and advances the counters.
func (gs *GameState) AddTurnToHistory(record TurnRecord) {
	gs.History = append(gs.History, record)
	gs.Turn = record.Turn
	gs.LastHead = record.Head
	gs.LastResolved = record.Resolved
}
