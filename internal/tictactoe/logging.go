package tictactoe

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// LogObserver writes one log record per controller event.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger.With("component", "game")}
}

func (that *LogObserver) MoveAccepted(game *entity.Game, cell int, outcome entity.Outcome) {
	log := that.logger.With("gameID", game.ID, "cell", cell)

	switch outcome.Kind {
	case entity.OutcomeWin:
		log.Info("game won", "winner", outcome.Winner, "line", outcome.Line)
	case entity.OutcomeDraw:
		log.Info("game drawn")
	default:
		log.Debug("mark placed", "next", game.Turn)
	}
}

func (that *LogObserver) MoveRejected(game *entity.Game, cell int) {
	that.logger.Debug("move ignored", "gameID", game.ID, "cell", cell, "status", game.Status())
}

func (that *LogObserver) Restarted(game *entity.Game) {
	that.logger.Info("game restarted", "gameID", game.ID)
}
