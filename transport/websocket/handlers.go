package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

func (that *Server) handleGameState(ctx context.Context, sessionID string, _ *Message) Payload {
	log := that.logger.With("method", "handleGameState", "sessionID", sessionID)

	view, err := that.games.GetGame(ctx, sessionID)
	if err != nil {
		log.Error("failed to get game", "error", err)
		return Payload{Error: "failed to get the game"}
	}

	return Payload{View: &view}
}

func (that *Server) handleCellClick(ctx context.Context, sessionID string, msg *Message) Payload {
	log := that.logger.With("method", "handleCellClick", "sessionID", sessionID)

	var payloadReq RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return Payload{Error: errMalformedMessage.Error()}
		}
	}

	if payloadReq.Cell == nil {
		return Payload{Error: fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell).Error()}
	}

	result, err := that.games.ClickCell(ctx, sessionID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to click cell", "cell", *payloadReq.Cell, "error", err)
		return Payload{Error: "failed to make a move"}
	}

	return Payload{
		View:     &result.View,
		Outcome:  result.Outcome,
		Accepted: &result.Accepted,
	}
}

func (that *Server) handleGameRestart(ctx context.Context, sessionID string, _ *Message) Payload {
	log := that.logger.With("method", "handleGameRestart", "sessionID", sessionID)

	view, err := that.games.Restart(ctx, sessionID)
	if err != nil {
		log.Error("failed to restart game", "error", err)
		return Payload{Error: "failed to restart the game"}
	}

	return Payload{View: &view}
}
