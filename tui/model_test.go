package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	e, err := engine.NewEngine(engine.DefaultGameConfig(), engine.WithSeed(11))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(e)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModel_DrawStagesThenMoves(t *testing.T) {
	m := newTestModel(t)
	start := m.engine.GetPosition()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.plan == nil {
		t.Fatal("Expected the first press to stage a turn")
	}
	state := m.engine.GetState()
	if state.Turn != 0 || state.Position != start {
		t.Errorf("Expected no move while staged, got turn %d at %+v", state.Turn, state.Position)
	}
	if m.last != nil {
		t.Errorf("Expected no committed turn yet, got %+v", m.last)
	}

	target := m.plan.Target
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.engine.GetState().Turn != 1 {
		t.Errorf("Expected turn 1 after the second press, got %d", m.engine.GetState().Turn)
	}
	if m.last == nil || !m.last.Moved() || m.last.To != target {
		t.Fatalf("Expected the staged turn to be committed to %+v, got %+v", target, m.last)
	}
	if m.plan != nil || m.engine.GetState().Pending != nil {
		t.Error("Expected commit to clear the staged turn")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.engine.GetState().Turn != 2 {
		t.Errorf("Expected turn 2 after enter twice, got %d", m.engine.GetState().Turn)
	}
}

func TestModel_StagedCellInView(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		e, err := engine.NewEngine(engine.DefaultGameConfig(), engine.WithSeed(seed))
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		m := New(e)
		if strings.Contains(m.View(), string(engine.GlyphPending)) {
			t.Fatalf("seed %d: expected no staged cell before drawing", seed)
		}

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
		view := m.View()
		next := fmt.Sprintf("Next: (%d, %d)", m.plan.Target.Row, m.plan.Target.Col)
		if !strings.Contains(view, next) {
			t.Errorf("seed %d: expected %q in view:\n%s", seed, next, view)
		}
		// Decoys stay in place, so only real moves get a marker.
		moves := m.plan.Target != m.plan.From
		if got := strings.Contains(view, string(engine.GlyphPending)); got != moves {
			t.Errorf("seed %d: staged marker shown=%v, want %v:\n%s", seed, got, moves, view)
		}
	}
}

func TestModel_ForcedKeyDropsStagedDraw(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, runes("w"))
	if m.plan != nil || m.engine.GetState().Pending != nil {
		t.Error("Expected a forced move to drop the staged draw")
	}
	if m.last == nil || !m.last.Forced || m.last.Turn != 1 {
		t.Fatalf("Expected forced turn 1, got %+v", m.last)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(t, m, runes("r"))
	if m.plan != nil || m.engine.GetState().Turn != 0 {
		t.Error("Expected restart to drop the staged draw")
	}
}

func TestModel_ForcedKeys(t *testing.T) {
	tests := []struct {
		key  string
		want engine.Direction
	}{
		{"w", engine.Forward},
		{"a", engine.Left},
		{"d", engine.Right},
		{"q", engine.Up},
		{"e", engine.Down},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestModel(t)
			m, _ = press(t, m, runes(tt.key))

			if m.last == nil {
				t.Fatal("Expected a turn")
			}
			if !m.last.Forced || m.last.Actual != tt.want {
				t.Errorf("Expected forced %s, got forced=%v actual=%s", tt.want, m.last.Forced, m.last.Actual)
			}
		})
	}
}

func TestModel_ForcedBackwardAtStartIsRejected(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, runes("s"))

	state := m.engine.GetState()
	if state.Turn != 0 || state.Rejected != 1 {
		t.Errorf("Expected rejected move with no turn, got turn=%d rejected=%d", state.Turn, state.Rejected)
	}
	if m.last == nil || m.last.Moved() {
		t.Fatalf("Expected illegal move outcome, got %+v", m.last)
	}
	if !strings.Contains(m.View(), "Rejected: backward") {
		t.Errorf("Expected rejection in view:\n%s", m.View())
	}
}

func TestModel_WinAndRestart(t *testing.T) {
	m := newTestModel(t)
	length := m.engine.GetConfig().Length

	for i := 0; i < length-1; i++ {
		m, _ = press(t, m, runes("w"))
	}
	if !m.engine.IsWon() {
		t.Fatalf("Expected win after %d forced forward moves", length-1)
	}
	view := m.View()
	if !strings.Contains(view, "You reached the goal") {
		t.Errorf("Expected victory message in view:\n%s", view)
	}

	// Further turns are refused
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.err == nil {
		t.Fatal("Expected an error after the game is won")
	}
	if !strings.Contains(m.View(), "Press r to play again") {
		t.Errorf("Expected game over hint in view:\n%s", m.View())
	}

	m, _ = press(t, m, runes("r"))
	state := m.engine.GetState()
	if state.Won || state.Turn != 0 || m.err != nil || m.last != nil {
		t.Errorf("Expected a fresh game after restart, got %+v", state)
	}
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestModel(t)
		m, cmd := press(t, m, msg)
		if cmd == nil {
			t.Fatalf("Expected quit command for %s", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected tea.QuitMsg for %s", msg)
		}
		if m.View() != "" {
			t.Errorf("Expected empty view after quit")
		}
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	for _, want := range []string{
		"Liar Heads",
		"@",
		"=====",
		"Turn",
		"draw a head",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view:\n%s", want, view)
		}
	}

	m, _ = press(t, m, runes("w"))
	view = m.View()
	if !strings.Contains(view, "Announced") || !strings.Contains(view, "(forced)") {
		t.Errorf("Expected last turn details in view:\n%s", view)
	}
}

func TestModel_UnknownKeyIgnored(t *testing.T) {
	m := newTestModel(t)
	m, cmd := press(t, m, runes("z"))
	if cmd != nil {
		t.Error("Expected no command for an unbound key")
	}
	if m.engine.GetState().Turn != 0 {
		t.Error("Unbound key should not play a turn")
	}
}
