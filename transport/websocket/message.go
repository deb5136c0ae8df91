package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	actionGameState   = "game:state"
	actionCellClick   = "cell:click"
	actionGameRestart = "game:restart"
)

var (
	errUnknownAction    = apperror.ErrUnknownAction
	errMalformedMessage = errors.New("malformed message")
)

// Message is the envelope for both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
}

type Payload struct {
	View     *tictactoe.View `json:"view,omitempty"`
	Outcome  *entity.Outcome `json:"outcome,omitempty"`
	Accepted *bool           `json:"accepted,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func newMessage(action string, payload Payload) *Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		return newErrorMessage(action, err)
	}

	return &Message{Action: action, Payload: raw}
}

func newErrorMessage(action string, err error) *Message {
	raw, _ := json.Marshal(Payload{Error: err.Error()})

	return &Message{Action: action, Payload: raw}
}
