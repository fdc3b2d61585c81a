package engine

import (
	"errors"
	"fmt"
)

var (
	ErrRepeatWithoutPrecedent = errors.New("repeat head has no previous head")
	ErrUnresolvedPrecedent    = errors.New("previous head is not resolved")
)

// Resolve returns the honesty class a head actually has. Truth and Lie
// stand for themselves. Repeat takes previous, which must already be
// resolved (Truth or Lie), so a run of Repeat heads always carries the
// nearest Truth or Lie forward.
func Resolve(current, previous HeadKind) (HeadKind, error) {
	switch current {
	case Truth, Lie:
		return current, nil
	case Repeat:
		switch previous {
		case Truth, Lie:
			return previous, nil
		case NoHead:
			return NoHead, ErrRepeatWithoutPrecedent
		case Repeat:
			return NoHead, fmt.Errorf("%w: got %s", ErrUnresolvedPrecedent, previous)
		}
		return NoHead, fmt.Errorf("%w: previous %d", ErrUnknownHeadKind, int(previous))
	case NoHead:
		return NoHead, fmt.Errorf("%w: current head is %s", ErrUnknownHeadKind, current)
	}
	return NoHead, fmt.Errorf("%w: %d", ErrUnknownHeadKind, int(current))
}

// IsLying reports whether current, resolved against previous, lies.
func IsLying(current, previous HeadKind) (bool, error) {
	resolved, err := Resolve(current, previous)
	if err != nil {
		return false, err
	}
	return resolved == Lie, nil
}

// ResolveChain resolves a sequence of heads from the start of a game and
// returns whether each one lies.
func ResolveChain(kinds []HeadKind) ([]bool, error) {
	lying := make([]bool, 0, len(kinds))
	previous := NoHead
	for i, k := range kinds {
		resolved, err := Resolve(k, previous)
		if err != nil {
			return nil, fmt.Errorf("head %d: %w", i+1, err)
		}
		lying = append(lying, resolved == Lie)
		previous = resolved
	}
	return lying, nil
}
