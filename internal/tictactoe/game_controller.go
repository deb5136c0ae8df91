package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Observer is told about every event the controller handles.
type Observer interface {
	MoveAccepted(game *entity.Game, cell int, outcome entity.Outcome)
	MoveRejected(game *entity.Game, cell int)
	Restarted(game *entity.Game)
}

type Option func(*GameController)

// WithObserver registers an observer. Observers are called synchronously in registration order.
func WithObserver(observer Observer) Option {
	return func(that *GameController) {
		if observer != nil {
			that.observers = append(that.observers, observer)
		}
	}
}

// GameController owns one game and translates shell events into moves on it.
// It is not safe for concurrent use.
type GameController struct {
	game      *entity.Game
	observers []Observer
}

func NewGameController(game *entity.Game, opts ...Option) *GameController {
	if game == nil {
		game = entity.NewGame("")
	}

	controller := &GameController{game: game}
	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// HandleCellClick places the current player's mark into cell.
// The returned bool is false when the click was ignored.
func (that *GameController) HandleCellClick(cell int) (entity.Outcome, bool) {
	outcome, ok := that.game.PlaceMark(cell)
	if !ok {
		for _, observer := range that.observers {
			observer.MoveRejected(that.game, cell)
		}

		return entity.Outcome{}, false
	}

	for _, observer := range that.observers {
		observer.MoveAccepted(that.game, cell, outcome)
	}

	return outcome, true
}

func (that *GameController) HandleRestart() {
	that.game.Reset()

	for _, observer := range that.observers {
		observer.Restarted(that.game)
	}
}

func (that *GameController) View() View {
	return NewView(that.game)
}

// Game returns the controlled game. Callers must not modify it.
func (that *GameController) Game() *entity.Game {
	return that.game
}
