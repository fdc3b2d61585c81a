package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

// Model is the bubbletea model for one in-process game.
type Model struct {
	engine *engine.GameEngine
	keys   keyMap
	help   help.Model
	styles Styles

	plan     *engine.TurnPlan // staged by the first draw key press
	last     *engine.TurnResult
	err      error
	width    int
	quitting bool
}

// New creates a model driving e.
func New(e *engine.GameEngine) Model {
	h := help.New()
	h.ShowAll = true
	return Model{
		engine: e,
		keys:   defaultKeyMap(),
		help:   h,
		styles: DefaultStyles(),
	}
}

// Run plays e in the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, e *engine.GameEngine) error {
	_, err := tea.NewProgram(New(e), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Restart):
			m.engine.Reset()
			m.plan = nil
			m.last = nil
			m.err = nil
			log.Debug().Msg("tui restart")

		case key.Matches(msg, m.keys.Draw):
			if m.plan == nil {
				m.stage()
			} else {
				m.commit()
			}

		default:
			for _, f := range m.keys.forced() {
				if key.Matches(msg, f.binding) {
					d := f.direction
					m.advance(&d)
					break
				}
			}
		}
	}
	return m, nil
}

// stage draws the next turn and shows its target without moving.
func (m *Model) stage() {
	plan, err := m.engine.Plan(nil)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.plan = plan
}

func (m *Model) commit() {
	turn, err := m.engine.Commit(m.plan)
	m.plan = nil
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.last = turn
}

// advance plays a forced turn at once, dropping any staged draw.
func (m *Model) advance(forced *engine.Direction) {
	m.plan = nil
	turn, err := m.engine.Advance(forced)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.last = turn
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.engine.GetState()
	config := m.engine.GetConfig()
	s := m.styles

	sections := []string{
		s.Title.Render(fmt.Sprintf("Liar Heads · %s", config.Name)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.Board.Render(m.renderBoard(state)),
			"  ",
			m.renderStatus(state),
		),
	}

	if state.Won {
		sections = append(sections, s.Victory.Render(state.Message))
	} else if state.Message != "" {
		sections = append(sections, s.Message.Render(state.Message))
	}
	if m.last != nil && m.last.Description != "" {
		sections = append(sections, s.Describe.Render(m.last.Description))
	}
	if m.err != nil {
		msg := m.err.Error()
		if errors.Is(m.err, engine.ErrGameOver) {
			msg = "The game is over. Press r to play again."
		}
		sections = append(sections, s.Error.Render(msg))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderBoard(state *engine.GameState) string {
	rows := engine.RenderGrid(state)
	var b strings.Builder
	for i, row := range rows {
		for _, r := range row {
			cell := string(r)
			switch r {
			case engine.GlyphPlayer:
				b.WriteString(m.styles.Player.Render(cell))
			case engine.GlyphPending:
				b.WriteString(m.styles.Pending.Render(cell))
			case engine.GlyphGoal:
				b.WriteString(m.styles.Goal.Render(cell))
			default:
				b.WriteString(m.styles.Empty.Render(cell))
			}
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStatus(state *engine.GameState) string {
	s := m.styles
	config := m.engine.GetConfig()

	line := func(label, value string) string {
		return s.Label.Render(label) + value
	}

	lines := []string{
		line("Turn", fmt.Sprint(state.Turn)),
		line("Position", fmt.Sprintf("(%d, %d)", state.Position.Row, state.Position.Col)),
		line("To goal", fmt.Sprintf("%d rows", engine.RowsToGoal(state))),
	}

	if p := m.plan; p != nil {
		lines = append(lines,
			"",
			s.Pending.Render(fmt.Sprintf("Next: (%d, %d)", p.Target.Row, p.Target.Col)),
			s.Muted.Render("space to move"),
		)
	}

	if t := m.last; t != nil {
		if t.Moved() {
			head := config.HeadLabel(t.Head)
			if t.Head == engine.Repeat {
				head += " → " + config.HeadLabel(t.Resolved)
			}
			announced := "nothing"
			if t.HasAnnouncement() {
				announced = t.AnnouncedLabel
			}
			moved := config.DirectionLabel(t.Actual)
			if t.Forced {
				moved += " (forced)"
			}
			lines = append(lines,
				"",
				line("Head", head),
				line("Moved", moved),
				line("Announced", announced),
			)
		} else {
			lines = append(lines, "", s.Muted.Render(fmt.Sprintf("Rejected: %s", config.DirectionLabel(t.Actual))))
		}
	}

	stats := engine.CountHeads(state.History)
	if stats.Turns > 0 {
		lines = append(lines, "", s.Muted.Render(fmt.Sprintf("Lies %d/%d · decoys %d", stats.Lies, stats.Turns, stats.Decoys)))
	}

	return strings.Join(lines, "\n")
}
