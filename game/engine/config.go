package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/liarheads/game/choice"
)

var (
	ErrInvalidConfig     = errors.New("invalid game config")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config file extensions, in lookup order.
var ConfigExtensions = []string{".yaml", ".yml", ".json"}

// ValidateGameConfig checks a configuration for correctness and playability.
// Weight problems wrap both ErrInvalidConfig and choice.ErrInvalidWeight.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	// Validate grid
	if config.Length < MinGridSize || config.Length > MaxGridSize {
		return fmt.Errorf("%w: length must be between %d and %d, got %d", ErrInvalidConfig, MinGridSize, MaxGridSize, config.Length)
	}
	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("%w: width must be between %d and %d, got %d", ErrInvalidConfig, MinGridSize, MaxGridSize, config.Width)
	}
	if !InBounds(config.Start, config.Length, config.Width) {
		return fmt.Errorf("%w: start (%d,%d) is outside the %dx%d grid",
			ErrInvalidConfig, config.Start.Row, config.Start.Col, config.Length, config.Width)
	}

	// Validate weights by building the draw they feed
	if _, err := newDirectionChoice(config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	// Validate labels
	for key := range config.Labels.Heads {
		if _, err := ParseHeadKind(key); err != nil {
			return fmt.Errorf("%w: labels.heads: %w", ErrInvalidConfig, err)
		}
	}
	for key := range config.Labels.Directions {
		if _, err := ParseDirection(key); err != nil {
			return fmt.Errorf("%w: labels.directions: %w", ErrInvalidConfig, err)
		}
	}

	if n := len(config.UsefulTraits); n != 0 && n != len(HeadKinds()) {
		return fmt.Errorf("%w: useful_traits must list one trait per head kind (%d), got %d",
			ErrInvalidConfig, len(HeadKinds()), n)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("%w: messages.welcome is required", ErrInvalidConfig)
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("%w: messages.victory is required", ErrInvalidConfig)
	}
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("%w: messages.victory must contain %%d for the turn count", ErrInvalidConfig)
	}
	if config.Messages.Announce != "" && !strings.Contains(config.Messages.Announce, "%s") {
		return fmt.Errorf("%w: messages.announce must contain %%s for the direction", ErrInvalidConfig)
	}
	if config.Messages.IllegalMove != "" && !strings.Contains(config.Messages.IllegalMove, "%s") {
		return fmt.Errorf("%w: messages.illegal_move must contain %%s for the direction", ErrInvalidConfig)
	}

	return nil
}

// newDirectionChoice turns the configured weights into a weighted draw in
// catalog order. Every direction needs a weight.
func newDirectionChoice(config *GameConfig, opts ...choice.Option) (*choice.Choice[Direction], error) {
	for key := range config.DirectionWeights {
		if _, err := ParseDirection(key); err != nil {
			return nil, fmt.Errorf("direction_weights: %w", err)
		}
	}

	entries := make([]choice.Weighted[Direction], 0, len(AllDirections()))
	for _, d := range AllDirections() {
		w, ok := lookupWeight(config.DirectionWeights, d)
		if !ok {
			return nil, fmt.Errorf("direction_weights: %w: missing %s", choice.ErrInvalidWeight, d)
		}
		entries = append(entries, choice.Weighted[Direction]{Value: d, Weight: w})
	}
	return choice.NewWeighted("direction", entries, opts...)
}

func lookupWeight(weights map[string]float64, d Direction) (float64, bool) {
	for key, w := range weights {
		if strings.EqualFold(strings.TrimSpace(key), d.String()) {
			return w, true
		}
	}
	return 0, false
}

// DefaultGameConfig returns the built-in 8x5 configuration.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "default",
		Description: "Eight rows to the goal, five columns wide, heads that may lie",
		Length:      8,
		Width:       5,
		Start:       Position{Row: 0, Col: 2},
		DirectionWeights: map[string]float64{
			"forward":  0.3,
			"backward": 0.1,
			"left":     0.15,
			"right":    0.15,
			"up":       0.15,
			"down":     0.15,
		},
		Labels: Labels{
			Heads: map[string]string{
				"truth":  "Honest head",
				"lie":    "Lying head",
				"repeat": "Echo head",
			},
		},
		UsefulTraits: []string{
			"always tells the truth",
			"always lies",
			"is as honest as the head before it",
		},
		UselessTraits: []string{
			"has a crooked nose",
			"hums while it speaks",
			"wears a tiny hat",
			"smells faintly of pine",
			"blinks out of sync",
		},
		Messages: Messages{
			Welcome:        "Reach the last row. Listen to the heads, but not too closely.",
			Victory:        "You reached the goal in %d turns!",
			Announce:       "The head says: go %s",
			NoAnnouncement: "The head opens its mouth and says nothing.",
			IllegalMove:    "You can't go %s from here.",
		},
	}
}

// InitGameStateFromConfig creates a fresh game state. A nil config uses
// DefaultGameConfig.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	state := &GameState{
		Position:   config.Start,
		Length:     config.Length,
		Width:      config.Width,
		History:    []TurnRecord{},
		Message:    config.Messages.Welcome,
		ConfigName: config.Name,
	}
	if state.AtGoal(state.Position) {
		state.Won = true
		state.Message = fmt.Sprintf(config.Messages.Victory, 0)
	}
	return state
}

// IsConfigFile reports whether name has a config file extension.
func IsConfigFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ConfigExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DecodeGameConfig parses and validates a config. ext selects the format
// and is one of ConfigExtensions.
func DecodeGameConfig(data []byte, ext string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// EncodeGameConfig renders config in the format selected by ext.
func EncodeGameConfig(config *GameConfig, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		return yaml.Marshal(config)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// LoadGameConfig reads a config file, picking the format from its extension.
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	config, err := DecodeGameConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return config, nil
}
