package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the six named directions a head can announce.
// NoDirection is the zero value and marks "nothing to announce".
type Direction int

const (
	NoDirection Direction = iota
	Forward
	Backward
	Left
	Right
	Up
	Down
)

var directionNames = [...]string{
	NoDirection: "none",
	Forward:     "forward",
	Backward:    "backward",
	Left:        "left",
	Right:       "right",
	Up:          "up",
	Down:        "down",
}

// AllDirections returns the six directions in catalog order.
func AllDirections() []Direction {
	return []Direction{Forward, Backward, Left, Right, Up, Down}
}

// CardinalDirections returns the four directions that move the player.
func CardinalDirections() []Direction {
	return []Direction{Forward, Backward, Left, Right}
}

// Valid reports whether d is one of the six catalog directions.
func (d Direction) Valid() bool {
	return d >= Forward && d <= Down
}

// IsDecoy reports whether d has zero displacement.
func (d Direction) IsDecoy() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	if d < NoDirection || d > Down {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Displacement returns the (row, column) delta of d. Forward moves toward
// the goal row.
func Displacement(d Direction) (dRow, dCol int) {
	switch d {
	case Forward:
		return 1, 0
	case Backward:
		return -1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Up, Down, NoDirection:
		return 0, 0
	}
	return 0, 0
}

// Invert returns the opposite direction. It is its own inverse and has no
// fixed point among the six catalog directions.
func Invert(d Direction) Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	}
	return NoDirection
}

// ParseDirection maps a direction name (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, d := range AllDirections() {
		if directionNames[d] == name {
			return d, nil
		}
	}
	return NoDirection, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText encodes the direction by name, so JSON and YAML carry
// "forward" rather than a number.
func (d Direction) MarshalText() ([]byte, error) {
	if d < NoDirection || d > Down {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText accepts any name ParseDirection does, plus "none".
func (d *Direction) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), directionNames[NoDirection]) {
		*d = NoDirection
		return nil
	}
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func containsDirection(list []Direction, d Direction) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}
