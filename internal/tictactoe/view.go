package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const drawMessage = "It's a draw!"

// CellView is what a shell needs to draw one cell.
type CellView struct {
	Mark string `json:"mark"`
	// Highlighted marks the cells of the winning line.
	Highlighted bool `json:"highlighted"`
	// WinningPlayerMark marks every cell holding the winner's mark.
	WinningPlayerMark bool `json:"winning_player_mark"`
}

// View is a read-only projection of a game.
type View struct {
	Cells          [entity.BoardSize]CellView `json:"cells"`
	Status         string                     `json:"status"`
	State          string                     `json:"state"`
	Turn           string                     `json:"turn,omitempty"`
	Winner         string                     `json:"winner,omitempty"`
	RestartVisible bool                       `json:"restart_visible"`
	InputEnabled   bool                       `json:"input_enabled"`
}

// NewView derives the view from the game alone, so applying it twice gives the same picture.
func NewView(game *entity.Game) View {
	view := View{
		State:          game.Status(),
		RestartVisible: !game.IsLive(),
		InputEnabled:   game.IsLive(),
	}

	for i, mark := range game.Board {
		view.Cells[i].Mark = mark
	}

	switch {
	case game.IsLive():
		view.Turn = game.Turn
		view.Status = TurnMessage(game.Turn)
	case game.IsWon():
		view.Winner = game.Winner
		view.Status = WinMessage(game.Winner)

		for _, cell := range game.WinLine {
			if cell >= 0 && cell < entity.BoardSize {
				view.Cells[cell].Highlighted = true
			}
		}

		for i, mark := range game.Board {
			view.Cells[i].WinningPlayerMark = mark == game.Winner
		}
	default:
		view.Status = drawMessage
	}

	return view
}

func TurnMessage(player string) string {
	return fmt.Sprintf("Player %s's turn", player)
}

func WinMessage(player string) string {
	return fmt.Sprintf("Player %s has won!", player)
}
