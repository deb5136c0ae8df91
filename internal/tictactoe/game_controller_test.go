package tictactoe

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type recordingObserver struct {
	accepted []int
	rejected []int
	outcomes []entity.Outcome
	restarts int
}

func (that *recordingObserver) MoveAccepted(_ *entity.Game, cell int, outcome entity.Outcome) {
	that.accepted = append(that.accepted, cell)
	that.outcomes = append(that.outcomes, outcome)
}

func (that *recordingObserver) MoveRejected(_ *entity.Game, cell int) {
	that.rejected = append(that.rejected, cell)
}

func (that *recordingObserver) Restarted(_ *entity.Game) {
	that.restarts++
}

func clickAll(t *testing.T, controller *GameController, cells ...int) entity.Outcome {
	t.Helper()

	var outcome entity.Outcome
	for _, cell := range cells {
		var ok bool
		outcome, ok = controller.HandleCellClick(cell)
		require.True(t, ok, "click on cell %d was ignored", cell)
	}

	return outcome
}

func TestNewGameController(t *testing.T) {
	t.Run("Nil game starts a fresh one", func(t *testing.T) {
		// When: a controller is created without a game
		controller := NewGameController(nil)

		// Then: it owns a live game with X to move
		require.NotNil(t, controller.Game())
		assert.True(t, controller.Game().Live)
		assert.Equal(t, entity.PlayerX, controller.Game().Turn)
	})

	t.Run("Existing game is kept", func(t *testing.T) {
		// Given: a game in progress
		game := entity.NewGame("123")
		game.PlaceMark(4)

		// When: a controller is created around it
		controller := NewGameController(game)

		// Then: the same game is controlled
		assert.Same(t, game, controller.Game())
	})
}

func TestGameController_HandleCellClick(t *testing.T) {
	t.Run("Accepted click notifies observers", func(t *testing.T) {
		// Given: a controller with an observer
		observer := &recordingObserver{}
		controller := NewGameController(entity.NewGame("123"), WithObserver(observer))

		// When: cell 4 is clicked
		outcome, ok := controller.HandleCellClick(4)

		// Then: the move is accepted and reported
		require.True(t, ok)
		assert.Equal(t, entity.OutcomeContinue, outcome.Kind)
		assert.Equal(t, []int{4}, observer.accepted)
		assert.Empty(t, observer.rejected)
	})

	t.Run("Click on occupied cell fires no outcome", func(t *testing.T) {
		// Given: a controller where cell 0 holds X
		observer := &recordingObserver{}
		controller := NewGameController(entity.NewGame("123"), WithObserver(observer))
		clickAll(t, controller, 0)
		before := controller.View()

		// When: cell 0 is clicked again
		_, ok := controller.HandleCellClick(0)

		// Then: the click is ignored and the view is unchanged
		assert.False(t, ok)
		assert.Equal(t, before, controller.View())
		assert.Len(t, observer.outcomes, 1)
		assert.Equal(t, []int{0}, observer.rejected)
	})

	t.Run("Clicks after a win are ignored until restart", func(t *testing.T) {
		// Given: a game X has won
		controller := NewGameController(entity.NewGame("123"))
		clickAll(t, controller, 0, 3, 1, 4, 2)
		before := controller.View()

		// When: every empty cell is clicked
		for _, cell := range []int{5, 6, 7, 8} {
			_, ok := controller.HandleCellClick(cell)
			assert.False(t, ok)
		}

		// Then: nothing changed
		assert.Equal(t, before, controller.View())

		// When: the game is restarted
		controller.HandleRestart()

		// Then: clicks are accepted again
		_, ok := controller.HandleCellClick(5)
		assert.True(t, ok)
	})
}

func TestGameController_View(t *testing.T) {
	t.Run("Live game shows whose turn it is", func(t *testing.T) {
		// Given: a game where X has moved
		controller := NewGameController(entity.NewGame("123"))
		clickAll(t, controller, 0)

		// When: the view is rendered
		view := controller.View()

		// Then: it is O's turn and input is enabled
		assert.Equal(t, "Player O's turn", view.Status)
		assert.Equal(t, entity.StatusLive, view.State)
		assert.Equal(t, entity.PlayerO, view.Turn)
		assert.True(t, view.InputEnabled)
		assert.False(t, view.RestartVisible)
		assert.Equal(t, entity.PlayerX, view.Cells[0].Mark)

		for _, cell := range view.Cells {
			assert.False(t, cell.Highlighted)
			assert.False(t, cell.WinningPlayerMark)
		}
	})

	t.Run("Win highlights the line and the winner's cells", func(t *testing.T) {
		// Given: X wins with the top row
		controller := NewGameController(entity.NewGame("123"))
		clickAll(t, controller, 0, 3, 1, 4, 2)

		// When: the view is rendered
		view := controller.View()

		// Then: the status names the winner and the board is frozen
		assert.Equal(t, "Player X has won!", view.Status)
		assert.Equal(t, entity.PlayerX, view.Winner)
		assert.Empty(t, view.Turn)
		assert.False(t, view.InputEnabled)
		assert.True(t, view.RestartVisible)

		// Then: only the line is highlighted and only X cells carry the winner style
		for i, cell := range view.Cells {
			assert.Equal(t, i <= 2, cell.Highlighted, "highlight of cell %d", i)
			assert.Equal(t, cell.Mark == entity.PlayerX, cell.WinningPlayerMark, "winner style of cell %d", i)
		}
	})

	t.Run("Winner style covers marks outside the line", func(t *testing.T) {
		// Given: X wins the left column while also holding cell 8
		controller := NewGameController(entity.NewGame("123"))
		clickAll(t, controller, 0, 1, 8, 2, 3, 4, 6)

		// When: the view is rendered
		view := controller.View()

		// Then: cell 8 is styled as the winner's but not highlighted
		assert.True(t, view.Cells[8].WinningPlayerMark)
		assert.False(t, view.Cells[8].Highlighted)
		assert.True(t, view.Cells[6].Highlighted)
		assert.False(t, view.Cells[1].WinningPlayerMark)
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a drawn game
		controller := NewGameController(entity.NewGame("123"))
		outcome := clickAll(t, controller, 0, 1, 2, 4, 3, 5, 7, 6, 8)
		require.Equal(t, entity.OutcomeDraw, outcome.Kind)

		// When: the view is rendered
		view := controller.View()

		// Then: the draw message is shown without any highlight
		assert.Equal(t, "It's a draw!", view.Status)
		assert.Equal(t, entity.StatusDrawn, view.State)
		assert.True(t, view.RestartVisible)
		assert.False(t, view.InputEnabled)

		for _, cell := range view.Cells {
			assert.False(t, cell.Highlighted)
			assert.False(t, cell.WinningPlayerMark)
		}
	})

	t.Run("View is idempotent", func(t *testing.T) {
		// Given: a won game
		controller := NewGameController(entity.NewGame("123"))
		clickAll(t, controller, 0, 3, 1, 4, 2)

		// Then: rendering twice gives the same projection
		assert.Equal(t, controller.View(), controller.View())
	})
}

func TestGameController_HandleRestart(t *testing.T) {
	// Given: a won game with an observer
	observer := &recordingObserver{}
	controller := NewGameController(entity.NewGame("123"), WithObserver(observer))
	clickAll(t, controller, 0, 3, 1, 4, 2)

	// When: restart is clicked
	controller.HandleRestart()

	// Then: the view is back to the initial one
	view := controller.View()
	assert.Equal(t, "Player X's turn", view.Status)
	assert.False(t, view.RestartVisible)
	assert.True(t, view.InputEnabled)
	assert.Equal(t, 1, observer.restarts)

	for _, cell := range view.Cells {
		assert.Equal(t, CellView{}, cell)
	}
}

func TestLogObserver(t *testing.T) {
	// Given: a controller logging into a buffer
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	controller := NewGameController(entity.NewGame("123"), WithObserver(NewLogObserver(logger)))

	// When: a game is won, a late click is ignored and the game is restarted
	clickAll(t, controller, 0, 3, 1, 4, 2)
	controller.HandleCellClick(8)
	controller.HandleRestart()

	// Then: every event is in the log
	out := buf.String()
	assert.Contains(t, out, `"msg":"game won"`)
	assert.Contains(t, out, `"winner":"X"`)
	assert.Contains(t, out, `"msg":"move ignored"`)
	assert.Contains(t, out, `"msg":"game restarted"`)
	assert.Contains(t, out, `"component":"game"`)
}
