package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func keyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// clickAt presses the left button in the middle of a cell.
func clickAt(cell int) tea.MouseMsg {
	return tea.MouseMsg{
		X:      boardLeft + (cell%3)*colStride + cellWidth/2,
		Y:      boardTop + (cell/3)*rowStride + cellHeight/2,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
}

func press(m *Model, keys ...string) {
	for _, key := range keys {
		m.Update(keyPress(key))
	}
}

func screenLine(m *Model, row int) string {
	return strings.Split(m.View(), "\n")[row]
}

func TestCellAt(t *testing.T) {
	t.Run("Every cell maps to its index", func(t *testing.T) {
		for cell := range entity.BoardSize {
			msg := clickAt(cell)
			assert.Equal(t, cell, cellAt(msg.X, msg.Y))
		}
	})

	t.Run("Cell corners are inside the cell", func(t *testing.T) {
		assert.Equal(t, 0, cellAt(boardLeft, boardTop))
		assert.Equal(t, 0, cellAt(boardLeft+cellWidth-1, boardTop+cellHeight-1))
		assert.Equal(t, 8, cellAt(boardLeft+2*colStride+cellWidth-1, boardTop+2*rowStride+cellHeight-1))
	})

	t.Run("Grid lines and margins are not cells", func(t *testing.T) {
		assert.Equal(t, -1, cellAt(boardLeft+cellWidth, boardTop))
		assert.Equal(t, -1, cellAt(boardLeft, boardTop+cellHeight))
		assert.Equal(t, -1, cellAt(boardLeft-1, boardTop))
		assert.Equal(t, -1, cellAt(boardLeft, boardTop-1))
		assert.Equal(t, -1, cellAt(boardLeft+3*colStride, boardTop))
		assert.Equal(t, -1, cellAt(boardLeft, statusRow))
	})
}

func TestModel_Mouse(t *testing.T) {
	t.Run("Clicks play the game", func(t *testing.T) {
		// Given: a new terminal game
		m := New(Options{})

		// When: X@0, O@3, X@1, O@4, X@2 are clicked
		for _, cell := range []int{0, 3, 1, 4, 2} {
			m.Update(clickAt(cell))
		}

		// Then: X has won and the restart button shows up
		assert.True(t, m.Game().IsWon())
		assert.Contains(t, screenLine(m, statusRow), "Player X has won!")
		assert.Contains(t, screenLine(m, restartRow), restartLabel)

		// When: the restart button is clicked
		m.Update(tea.MouseMsg{X: boardLeft + 1, Y: restartRow, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

		// Then: the board is fresh again
		assert.Equal(t, entity.NewGame("terminal"), m.Game())
		assert.Contains(t, screenLine(m, statusRow), "Player X's turn")
	})

	t.Run("Only left presses count", func(t *testing.T) {
		m := New(Options{})

		// When: the center is released and right clicked
		release := clickAt(4)
		release.Action = tea.MouseActionRelease
		right := clickAt(4)
		right.Button = tea.MouseButtonRight
		m.Update(release)
		m.Update(right)

		// Then: nothing is placed
		assert.Empty(t, m.Game().Board[4])
	})

	t.Run("Restart row does nothing while the game is live", func(t *testing.T) {
		// Given: a game with one move
		m := New(Options{})
		m.Update(clickAt(4))

		// When: the hidden restart button area is clicked
		m.Update(tea.MouseMsg{X: boardLeft + 1, Y: restartRow, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

		// Then: the move is still there
		assert.Equal(t, entity.PlayerX, m.Game().Board[4])
	})
}

func TestModel_Keys(t *testing.T) {
	t.Run("Digits play cells", func(t *testing.T) {
		m := New(Options{})

		// When: 1, 4, 2, 5, 3 are pressed
		press(m, "1", "4", "2", "5", "3")

		// Then: X has won with the top row
		require.True(t, m.Game().IsWon())
		assert.Equal(t, []int{0, 1, 2}, m.Game().WinLine)
	})

	t.Run("Cursor moves and plays", func(t *testing.T) {
		m := New(Options{})

		// When: the cursor goes from the center to the top left corner and enter is pressed
		press(m, "up", "left", "enter")

		// Then: X is in cell 0
		assert.Equal(t, entity.PlayerX, m.Game().Board[0])

		// When: the cursor moves past the edge and space is pressed
		press(m, "k", "h", "j", "j", "j", "l", " ")

		// Then: it stays on the board and O lands in cell 7
		assert.Equal(t, 7, m.cursor)
		assert.Equal(t, entity.PlayerO, m.Game().Board[7])
	})

	t.Run("Restart key only works after the game is over", func(t *testing.T) {
		m := New(Options{})

		// When: r is pressed during a live game
		press(m, "5", "r")

		// Then: nothing is reset
		assert.Equal(t, entity.PlayerX, m.Game().Board[4])

		// When: the game is won and r is pressed
		press(m, "1", "6", "2", "9", "3", "r")

		// Then: the game is reset
		assert.Equal(t, entity.NewGame("terminal"), m.Game())
	})

	t.Run("Quit keys", func(t *testing.T) {
		for _, key := range []string{"q", "ctrl+c"} {
			m := New(Options{})

			_, cmd := m.Update(keyPress(key))

			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		}
	})
}

func TestModel_View(t *testing.T) {
	t.Run("Board and status", func(t *testing.T) {
		// Given: a game after X@4
		m := New(Options{})
		press(m, "5")

		// Then: the mark is drawn in the middle of the center cell
		middle := screenLine(m, boardTop+rowStride+cellHeight/2)
		assert.Equal(t, 'X', []rune(middle)[boardLeft+colStride+cellWidth/2])
		assert.Contains(t, screenLine(m, statusRow), "Player O's turn")
		assert.Empty(t, strings.TrimSpace(screenLine(m, restartRow)))
	})

	t.Run("Draw", func(t *testing.T) {
		m := New(Options{})

		// When: a drawn game is played
		press(m, "1", "2", "3", "5", "4", "6", "8", "7", "9")

		// Then: the draw is announced
		assert.True(t, m.Game().IsDrawn())
		assert.Contains(t, screenLine(m, statusRow), "It's a draw!")
		assert.Contains(t, screenLine(m, restartRow), restartLabel)
	})
}
