// Command analyze runs seeded Monte Carlo simulations of game configuration
// files and prints how they play: turns to win, how often heads lie, how
// often the token hits a decoy, and how often a head stays silent.
//
//	analyze --games 500 --seed 1 configs/classic.yaml configs/narrow.json
//
// Without arguments it analyzes every config in ./configs.
package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

// Report summarizes the simulated games of one config.
type Report struct {
	Name        string
	Games       int
	Won         int
	Unfinished  int // hit the turn cap
	MeanTurns   float64
	MinTurns    int
	MaxTurns    int
	MedianTurns int
	Heads       engine.HeadStats
}

// LieRatio is the share of turns whose head lied.
func (r Report) LieRatio() float64 { return r.Heads.LieRate() }

// DecoyRatio is the share of turns that moved up or down.
func (r Report) DecoyRatio() float64 { return ratio(r.Heads.Decoys, r.Heads.Turns) }

// SilentRatio is the share of turns with no announcement.
func (r Report) SilentRatio() float64 { return ratio(r.Heads.Silent, r.Heads.Turns) }

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// simulate plays games games of config. Game i is seeded with seed+i, so
// reports are reproducible. Games still running after maxTurns are counted
// as unfinished.
func simulate(config *engine.GameConfig, games, maxTurns int, seed uint64) (Report, error) {
	report := Report{
		Name:     config.Name,
		Games:    games,
		MinTurns: math.MaxInt,
		Heads:    engine.HeadStats{Kinds: make(map[engine.HeadKind]int)},
	}

	var turns []int
	for i := 0; i < games; i++ {
		e, err := engine.NewEngine(config, engine.WithSeed(seed+uint64(i)))
		if err != nil {
			return Report{}, err
		}
		if _, err := e.AdvanceN(maxTurns, nil); err != nil {
			return Report{}, fmt.Errorf("game %d: %w", i, err)
		}

		state := e.GetState()
		stats := engine.CountHeads(state.History)
		report.Heads.Turns += stats.Turns
		report.Heads.Lies += stats.Lies
		report.Heads.Decoys += stats.Decoys
		report.Heads.Silent += stats.Silent
		for kind, n := range stats.Kinds {
			report.Heads.Kinds[kind] += n
		}

		if !state.Won {
			report.Unfinished++
			continue
		}
		report.Won++
		turns = append(turns, state.Turn)
		report.MinTurns = min(report.MinTurns, state.Turn)
		report.MaxTurns = max(report.MaxTurns, state.Turn)
	}

	if len(turns) == 0 {
		report.MinTurns = 0
		return report, nil
	}

	sum := 0
	for _, t := range turns {
		sum += t
	}
	report.MeanTurns = float64(sum) / float64(len(turns))
	sort.Ints(turns)
	report.MedianTurns = turns[len(turns)/2]
	return report, nil
}

// printReport writes a human-readable summary of r to w.
func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Games: %d (won %d, unfinished %d)\n", r.Games, r.Won, r.Unfinished)
	if r.Won > 0 {
		fmt.Fprintf(w, "Turns to win: mean %.1f, median %d, min %d, max %d\n", r.MeanTurns, r.MedianTurns, r.MinTurns, r.MaxTurns)
	}
	fmt.Fprintf(w, "Lie ratio: %.3f\n", r.LieRatio())
	fmt.Fprintf(w, "Decoy ratio: %.3f\n", r.DecoyRatio())
	fmt.Fprintf(w, "Silent announcements: %d (%.3f)\n", r.Heads.Silent, r.SilentRatio())
	for _, kind := range engine.HeadKinds() {
		fmt.Fprintf(w, "  %-7s %.3f\n", kind.String()+":", ratio(r.Heads.Kinds[kind], r.Heads.Turns))
	}

	if r.Unfinished > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d games did not finish within the turn cap\n", r.Unfinished)
	} else {
		fmt.Fprintf(w, "✅ Every game reached the goal\n")
	}
}

// configFiles returns args, or every config in dir when args is empty.
func configFiles(args []string, dir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
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

func analyze(ctx context.Context, cmd *cli.Command) error {
	files, err := configFiles(cmd.Args().Slice(), cmd.String("config-dir"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no config files to analyze")
	}

	games := int(cmd.Int("games"))
	maxTurns := int(cmd.Int("max-turns"))
	if games <= 0 || maxTurns <= 0 {
		return fmt.Errorf("games and max-turns must be positive")
	}
	seed := uint64(cmd.Int("seed"))

	out := cmd.Root().Writer
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", filepath.Base(file))

		config, err := engine.LoadGameConfig(file)
		if err != nil {
			fmt.Fprintf(out, "Error loading config: %v\n", err)
			continue
		}
		report, err := simulate(config, games, maxTurns, seed)
		if err != nil {
			return err
		}
		printReport(out, report)
	}
	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "simulate game configs and report how they play",
		ArgsUsage: "[config files...]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Value: 1000, Usage: "games to simulate per config"},
			&cli.IntFlag{Name: "max-turns", Value: 10000, Usage: "turn cap per game"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "base seed; game i uses seed+i"},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "directory scanned when no files are given"},
		},
		Action: analyze,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
