package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*usecase.TurnResult, error)
	Restart(ctx context.Context, sessionID string) (tictactoe.View, error)
	EndSession(ctx context.Context, sessionID string) error
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

type RouterOption func(r chi.Router)

// WithMetrics mounts the metrics handler on /metrics.
func WithMetrics(handler http.Handler) RouterOption {
	return func(r chi.Router) {
		r.Method(http.MethodGet, "/metrics", handler)
	}
}

// WithWebSocket mounts the websocket endpoint on /ws.
func WithWebSocket(handler http.Handler) RouterOption {
	return func(r chi.Router) {
		r.Method(http.MethodGet, "/ws", handler)
	}
}

// NewRouter builds the web shell: an HTML board for browsers and a JSON API for scripts.
func NewRouter(logger *slog.Logger, games gameUseCase, opts ...RouterOption) http.Handler {
	that := &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)

	r.Get("/", that.handlePage)
	r.Post("/cells/{index}", that.handleCellForm)
	r.Post("/restart", that.handleRestartForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/game", that.handleGetGame)
		r.Post("/cells/{index}", that.handleClickCell)
		r.Post("/restart", that.handleRestart)
		r.Delete("/game", that.handleEndSession)
	})

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (that *handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePage")
	sessionID := session.Ensure(w, r)

	view, err := that.games.GetGame(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to get game", "sessionID", sessionID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = renderPage(w, view); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *handlers) handleCellForm(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCellForm")
	sessionID := session.Ensure(w, r)

	cell, err := parseCell(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err = that.games.ClickCell(r.Context(), sessionID, cell); err != nil {
		log.Error("failed to click cell", "sessionID", sessionID, "cell", cell, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) handleRestartForm(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRestartForm")
	sessionID := session.Ensure(w, r)

	if _, err := that.games.Restart(r.Context(), sessionID); err != nil {
		log.Error("failed to restart game", "sessionID", sessionID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *handlers) handleGetGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetGame")
	sessionID := session.Ensure(w, r)

	view, err := that.games.GetGame(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to get game", "sessionID", sessionID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get the game"})
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *handlers) handleClickCell(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleClickCell")
	sessionID := session.Ensure(w, r)

	cell, err := parseCell(r)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := that.games.ClickCell(r.Context(), sessionID, cell)
	if err != nil {
		log.Error("failed to click cell", "sessionID", sessionID, "cell", cell, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to make a move"})
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *handlers) handleRestart(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRestart")
	sessionID := session.Ensure(w, r)

	view, err := that.games.Restart(r.Context(), sessionID)
	if err != nil {
		log.Error("failed to restart game", "sessionID", sessionID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to restart the game"})
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

// handleEndSession drops the session's game and expires the cookie.
func (that *handlers) handleEndSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEndSession")

	sessionID, ok := session.Existing(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := that.games.EndSession(r.Context(), sessionID); err != nil {
		log.Error("failed to end session", "sessionID", sessionID, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to end the session"})
		return
	}

	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// parseCell only checks that the index is a number. Range checks belong to the game,
// where an out of range cell is an ignored click.
func parseCell(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")

	cell, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, raw)
	}

	return cell, nil
}

