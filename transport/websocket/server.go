package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	maxMessageSize = 4096
)

type gameUseCase interface {
	GetGame(ctx context.Context, sessionID string) (tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*usecase.TurnResult, error)
	Restart(ctx context.Context, sessionID string) (tictactoe.View, error)
}

type handlerFunc func(ctx context.Context, sessionID string, msg *Message) Payload

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionCellClick] = server.handleCellClick
	server.handlers[actionGameRestart] = server.handleGameRestart

	return server
}

// ServeHTTP upgrades the request and plays the session's game over the connection.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	sessionID, cookie := session.FromRequest(req)

	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
		log.Info("session cookie not found, new one created", "sessionID", sessionID)
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("websocket connection established", "sessionID", sessionID)

	if err = that.handleMessages(req.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "sessionID", sessionID, "error", err)
	}
}

// handleMessages answers every message on conn until the peer goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "sessionID", sessionID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	var writeMu sync.Mutex
	done := make(chan struct{})
	defer close(done)

	go that.keepAlive(conn, &writeMu, done)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("websocket connection closed")
				return nil
			}

			return err
		}

		var msg Message
		if err = json.Unmarshal(raw, &msg); err != nil {
			log.Warn("failed to decode message", "error", err)
			if err = that.write(conn, &writeMu, newErrorMessage("", errMalformedMessage)); err != nil {
				return err
			}
			continue
		}

		if err = that.write(conn, &writeMu, that.dispatch(ctx, sessionID, &msg)); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sessionID string, msg *Message) *Message {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.logger.Warn("unknown action", "action", msg.Action)
		return newErrorMessage(msg.Action, errUnknownAction)
	}

	payload := handler(ctx, sessionID, msg)

	return newMessage(msg.Action, payload)
}

func (that *Server) keepAlive(conn *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			writeMu.Unlock()

			if err != nil {
				return
			}
		}
	}
}

func (that *Server) write(conn *websocket.Conn, writeMu *sync.Mutex, msg *Message) error {
	writeMu.Lock()
	defer writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	return conn.WriteJSON(msg)
}
