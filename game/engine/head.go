package engine

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownHeadKind = errors.New("unknown head kind")

// HeadKind is the honesty class of a head. NoHead is the zero value and
// stands for "there was no previous head".
type HeadKind int

const (
	NoHead HeadKind = iota
	Truth
	Lie
	Repeat
)

var headNames = [...]string{
	NoHead: "none",
	Truth:  "truth",
	Lie:    "lie",
	Repeat: "repeat",
}

// HeadKinds returns the drawable kinds. Trait lists in GameConfig are
// index-aligned with this order.
func HeadKinds() []HeadKind {
	return []HeadKind{Truth, Lie, Repeat}
}

// Valid reports whether k is a drawable kind.
func (k HeadKind) Valid() bool {
	return k >= Truth && k <= Repeat
}

func (k HeadKind) String() string {
	if k < NoHead || k > Repeat {
		return fmt.Sprintf("head(%d)", int(k))
	}
	return headNames[k]
}

// ParseHeadKind maps a kind name (case-insensitive) to a HeadKind.
func ParseHeadKind(s string) (HeadKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range HeadKinds() {
		if headNames[k] == name {
			return k, nil
		}
	}
	return NoHead, fmt.Errorf("%w: %q", ErrUnknownHeadKind, s)
}

func (k HeadKind) MarshalText() ([]byte, error) {
	if k < NoHead || k > Repeat {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHeadKind, int(k))
	}
	return []byte(headNames[k]), nil
}

func (k *HeadKind) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), headNames[NoHead]) {
		*k = NoHead
		return nil
	}
	parsed, err := ParseHeadKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
