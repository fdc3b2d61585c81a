package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

func TestSimulate_DefaultConfig(t *testing.T) {
	config := engine.DefaultGameConfig()

	report, err := simulate(config, 50, 10000, 7)
	require.NoError(t, err)

	assert.Equal(t, 50, report.Games)
	assert.Equal(t, 50, report.Won)
	assert.Zero(t, report.Unfinished)

	minRows := config.Length - 1 - config.Start.Row
	assert.GreaterOrEqual(t, report.MinTurns, minRows, "cannot win faster than one row per turn")
	assert.GreaterOrEqual(t, report.MaxTurns, report.MedianTurns)
	assert.GreaterOrEqual(t, report.MedianTurns, report.MinTurns)
	assert.GreaterOrEqual(t, report.MeanTurns, float64(report.MinTurns))
	assert.LessOrEqual(t, report.MeanTurns, float64(report.MaxTurns))

	assert.Greater(t, report.LieRatio(), 0.0)
	assert.Less(t, report.LieRatio(), 1.0)
	assert.Greater(t, report.DecoyRatio(), 0.0)
	assert.LessOrEqual(t, report.SilentRatio(), report.LieRatio(), "only lying heads can be silent")

	total := 0
	for _, n := range report.Heads.Kinds {
		total += n
	}
	assert.Equal(t, report.Heads.Turns, total)
}

func TestSimulate_Reproducible(t *testing.T) {
	config := engine.DefaultGameConfig()

	a, err := simulate(config, 20, 10000, 42)
	require.NoError(t, err)
	b, err := simulate(config, 20, 10000, 42)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different reports (-first +second):\n%s", diff)
	}
}

func TestSimulate_TurnCap(t *testing.T) {
	report, err := simulate(engine.DefaultGameConfig(), 10, 1, 3)
	require.NoError(t, err)

	assert.Zero(t, report.Won)
	assert.Equal(t, 10, report.Unfinished)
	assert.Zero(t, report.MinTurns)
	assert.Equal(t, 10, report.Heads.Turns)

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "did not finish")
	assert.NotContains(t, out.String(), "Turns to win")
}

func TestPrintReport(t *testing.T) {
	report, err := simulate(engine.DefaultGameConfig(), 5, 10000, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	printReport(&out, report)

	for _, want := range []string{
		"Name: default",
		"Games: 5 (won 5, unfinished 0)",
		"Turns to win: mean",
		"Lie ratio:",
		"Decoy ratio:",
		"Silent announcements:",
		"truth:",
		"repeat:",
		"Every game reached the goal",
	} {
		assert.Contains(t, out.String(), want)
	}
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.json", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}

	files, err := configFiles(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.yaml")}, files)

	files, err = configFiles([]string{"x.yaml"}, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.yaml"}, files)
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	data, err := engine.EncodeGameConfig(engine.DefaultGameConfig(), ".yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), data, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"name": "x"}`), 0644))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err = app.Run(context.Background(), []string{"analyze", "--games", "5", "--config-dir", dir})
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "=== Analyzing default.yaml ===")
	assert.Contains(t, report, "=== Analyzing broken.json ===")
	assert.Contains(t, report, "Error loading config")
	assert.True(t, strings.Index(report, "broken.json") < strings.Index(report, "default.yaml"), "files are analyzed in name order")

	err = newApp().Run(context.Background(), []string{"analyze", "--games", "0", "--config-dir", dir})
	assert.Error(t, err)
}
