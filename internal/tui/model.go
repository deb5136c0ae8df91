package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const hints = "click or 1-9 to play • arrows/hjkl + enter to move • r restart • q quit"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D7A85"))
	statusStyle  = lipgloss.NewStyle().Bold(true)
	restartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4"))
	gridStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C5C5C"))

	markStyles = map[string]lipgloss.Style{
		entity.PlayerX: lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
		entity.PlayerO: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
	}
	highlightStyle = lipgloss.NewStyle().Background(lipgloss.Color("#E5C07B")).Foreground(lipgloss.Color("#282C34"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
)

type Options struct {
	Logger    *slog.Logger
	Observers []tictactoe.Observer
}

// Model is the terminal shell around one game controller.
type Model struct {
	logger     *slog.Logger
	controller *tictactoe.GameController

	cursor int
}

func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	controllerOpts := make([]tictactoe.Option, 0, len(opts.Observers))
	for _, observer := range opts.Observers {
		controllerOpts = append(controllerOpts, tictactoe.WithObserver(observer))
	}

	return &Model{
		logger:     logger.With("component", "tui"),
		controller: tictactoe.NewGameController(entity.NewGame("terminal"), controllerOpts...),
		cursor:     4,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	if cell := cellAt(msg.X, msg.Y); cell >= 0 {
		m.cursor = cell
		m.controller.HandleCellClick(cell)
		return
	}

	if onRestart(msg.X, msg.Y) && m.controller.View().RestartVisible {
		m.controller.HandleRestart()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch key {
	case "q", "ctrl+c", "esc":
		m.logger.Debug("quit")
		return tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.cursor = int(key[0] - '1')
		m.controller.HandleCellClick(m.cursor)
	case "enter", " ":
		m.controller.HandleCellClick(m.cursor)
	case "r":
		if m.controller.View().RestartVisible {
			m.controller.HandleRestart()
		}
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	}

	return nil
}

func (m *Model) moveCursor(dRow, dCol int) {
	row := min(max(m.cursor/3+dRow, 0), 2)
	col := min(max(m.cursor%3+dCol, 0), 2)
	m.cursor = row*3 + col
}

// View lays the screen out row by row as described in layout.go.
func (m *Model) View() string {
	view := m.controller.View()

	lines := make([]string, 0, restartRow+4)
	lines = append(lines, titleStyle.Render("Tic Tac Toe"), "")

	indent := strings.Repeat(" ", boardLeft)
	separator := gridStyle.Render(strings.Join([]string{
		strings.Repeat("─", cellWidth),
		strings.Repeat("─", cellWidth),
		strings.Repeat("─", cellWidth),
	}, "┼"))

	for row := range 3 {
		if row > 0 {
			lines = append(lines, indent+separator)
		}

		for line := range cellHeight {
			parts := make([]string, 0, 3)
			for col := range 3 {
				parts = append(parts, m.renderCell(view, row*3+col, line))
			}

			lines = append(lines, indent+strings.Join(parts, gridStyle.Render("│")))
		}
	}

	lines = append(lines, "", indent+statusStyle.Render(view.Status))

	if view.RestartVisible {
		lines = append(lines, indent+restartStyle.Render(restartLabel))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, "", indent+hintStyle.Render(hints))

	return strings.Join(lines, "\n")
}

func (m *Model) renderCell(view tictactoe.View, index, line int) string {
	cell := view.Cells[index]

	text := strings.Repeat(" ", cellWidth)
	if line == cellHeight/2 && cell.Mark != "" {
		pad := (cellWidth - 1) / 2
		text = strings.Repeat(" ", pad) + cell.Mark + strings.Repeat(" ", cellWidth-pad-1)
	}

	style := lipgloss.NewStyle()
	if markStyle, ok := markStyles[cell.Mark]; ok {
		style = markStyle
	}

	if cell.WinningPlayerMark {
		style = style.Bold(true)
	}

	switch {
	case cell.Highlighted:
		style = style.Inherit(highlightStyle)
	case view.InputEnabled && index == m.cursor:
		style = style.Inherit(cursorStyle)
	}

	return style.Render(text)
}

// Game exposes the underlying game for callers that inspect the final state.
func (m *Model) Game() *entity.Game {
	return m.controller.Game()
}
