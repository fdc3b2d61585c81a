package engine

import (
	"fmt"
	"strings"

	"github.com/wricardo/mcp-training/liarheads/game/choice"
)

// describeHead builds the flavor text for a head: the useful trait that
// gives its kind away, if the config has one, followed by a random useless
// trait.
func (e *GameEngine) describeHead(kind HeadKind) (string, error) {
	var parts []string

	if idx := e.heads.IndexOf(kind); idx != choice.NotFound && idx < len(e.config.UsefulTraits) {
		parts = append(parts, e.config.UsefulTraits[idx])
	}
	if e.useless != nil {
		trait, err := e.useless.Select()
		if err != nil {
			return "", fmt.Errorf("draw trait: %w", err)
		}
		parts = append(parts, trait)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return fmt.Sprintf("This head %s.", strings.Join(parts, " and ")), nil
}
