// Command validate provides a small CLI that validates game configuration
// files (JSON or YAML) in a directory, ../configs by default. It checks:
//   - File format and required fields
//   - Grid bounds and start position
//   - Direction weights (all six, each positive)
//   - Labels, traits, and message placeholders
//   - Playability: the start is not already on the goal row, and the
//     draw drifts toward the goal
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Info holds the summary lines for a valid file, Warnings the problems
// that do not make it unplayable.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// validateConfig loads and validates a single configuration file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	config, err := engine.LoadGameConfig(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	playability := validatePlayability(config)
	result.Warnings = append(result.Warnings, playability.Warnings...)
	if !playability.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, playability.Errors...)
		return result
	}

	weights := normalizedWeights(config)
	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Grid: %dx%d", config.Length, config.Width),
		fmt.Sprintf("✓ Start: (row %d, col %d), %d rows to goal", config.Start.Row, config.Start.Col, config.Length-1-config.Start.Row),
		fmt.Sprintf("✓ Weights: forward %.0f%%, backward %.0f%%, sideways %.0f%%, decoys %.0f%%",
			100*weights[engine.Forward],
			100*weights[engine.Backward],
			100*(weights[engine.Left]+weights[engine.Right]),
			100*(weights[engine.Up]+weights[engine.Down])),
		fmt.Sprintf("✓ Traits: %d useful, %d useless", len(config.UsefulTraits), len(config.UselessTraits)),
	)
	return result
}

// validatePlayability checks properties the engine accepts but that make
// for a broken game.
func validatePlayability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{Valid: true}

	if config.Start.Row == config.Length-1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Start row %d is the goal row; the game is won before the first turn", config.Start.Row))
	}

	weights := normalizedWeights(config)
	if weights[engine.Forward] <= weights[engine.Backward] {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Forward weight (%.2f) does not exceed backward (%.2f); games rely on the start edge to make progress",
			weights[engine.Forward], weights[engine.Backward]))
	}

	if config.Width == 1 {
		result.Warnings = append(result.Warnings, "Width 1: left and right are always banned")
	}

	return result
}

// normalizedWeights returns each direction's share of the total weight.
func normalizedWeights(config *engine.GameConfig) map[engine.Direction]float64 {
	raw := make(map[engine.Direction]float64, len(config.DirectionWeights))
	total := 0.0
	for key, w := range config.DirectionWeights {
		d, err := engine.ParseDirection(key)
		if err != nil {
			continue
		}
		raw[d] += w
		total += w
	}
	if total > 0 {
		for d := range raw {
			raw[d] /= total
		}
	}
	return raw
}

// findConfigs lists the config files in dir, sorted by name.
func findConfigs(dir string) ([]string, error) {
	var files []string
	for _, ext := range engine.ConfigExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// run validates every config in dir, writing a report to w. It reports
// whether all files are valid.
func run(dir string, w io.Writer) (bool, error) {
	files, err := findConfigs(dir)
	if err != nil {
		return false, fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠ "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

// main validates the directory given as the first argument (default
// ../configs) and exits with non-zero status if any file is invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	ok, err := run(configDir, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}
