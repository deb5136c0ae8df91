package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// TurnResult is what a shell gets back for one cell click.
type TurnResult struct {
	Accepted bool            `json:"accepted"`
	Outcome  *entity.Outcome `json:"outcome,omitempty"`
	View     tictactoe.View  `json:"view"`
}

// GameManager runs one game per session. Calls for the same session never overlap.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	observers []tictactoe.Observer

	locks *keyedMutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, observers ...tictactoe.Observer) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		observers: observers,

		locks: newKeyedMutex(),
	}
}

func (that *GameManager) GetGame(ctx context.Context, sessionID string) (tictactoe.View, error) {
	if sessionID == "" {
		return tictactoe.View{}, apperror.ErrSessionRequired
	}

	unlock := that.locks.Lock(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return tictactoe.View{}, err
	}

	return tictactoe.NewView(game), nil
}

func (that *GameManager) ClickCell(ctx context.Context, sessionID string, cell int) (*TurnResult, error) {
	if sessionID == "" {
		return nil, apperror.ErrSessionRequired
	}

	unlock := that.locks.Lock(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	controller := that.newController(game)

	outcome, ok := controller.HandleCellClick(cell)
	if !ok {
		return &TurnResult{View: controller.View()}, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return &TurnResult{
		Accepted: true,
		Outcome:  &outcome,
		View:     controller.View(),
	}, nil
}

func (that *GameManager) Restart(ctx context.Context, sessionID string) (tictactoe.View, error) {
	if sessionID == "" {
		return tictactoe.View{}, apperror.ErrSessionRequired
	}

	unlock := that.locks.Lock(sessionID)
	defer unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return tictactoe.View{}, err
	}

	controller := that.newController(game)
	controller.HandleRestart()

	if err = that.updateGame(ctx, game); err != nil {
		return tictactoe.View{}, err
	}

	return controller.View(), nil
}

// EndSession drops the session's game. Ending a session that has no game is not an error.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperror.ErrSessionRequired
	}

	unlock := that.locks.Lock(sessionID)
	defer unlock()

	err := that.gameRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *GameManager) newController(game *entity.Game) *tictactoe.GameController {
	opts := make([]tictactoe.Option, 0, len(that.observers))
	for _, observer := range that.observers {
		opts = append(opts, tictactoe.WithObserver(observer))
	}

	return tictactoe.NewGameController(game, opts...)
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	log := that.logger.With("method", "getOrCreateGame", "sessionID", sessionID)

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	game = entity.NewGame(sessionID)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("new game created")

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
