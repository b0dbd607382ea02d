package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

// client actions
const (
	actionSetup       = "game:setup"
	actionTurn        = "game:turn"
	actionRestart     = "game:restart"
	actionResetScores = "scores:reset"
	actionHome        = "game:home"
)

// server actions
const (
	actionBoardClear     = "board:clear"
	actionBoardMark      = "board:mark"
	actionBoardHighlight = "board:highlight"
	actionStatus         = "status"
	actionScores         = "scores"
	actionPlayers        = "players"
	actionScreen         = "screen"
	actionHomeButton     = "home-button"
	actionSound          = "feedback:sound"
	actionVibrate        = "feedback:vibrate"
	actionError          = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type setupPayload struct {
	PlayerX string `json:"player_x"`
	PlayerO string `json:"player_o"`
}

type turnPayload struct {
	Cell *int `json:"cell"`
}

type restartPayload struct {
	VsComputer bool `json:"vs_computer"`
}

type markPayload struct {
	Cell int         `json:"cell"`
	Mark entity.Mark `json:"mark"`
}

type highlightPayload struct {
	Cells []int `json:"cells"`
}

type statusPayload struct {
	Text string `json:"text"`
}

type screenPayload struct {
	Screen tictactoe.Screen `json:"screen"`
}

type homeButtonPayload struct {
	Visible bool `json:"visible"`
}

type vibratePayload struct {
	PatternMs []int64 `json:"pattern_ms"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// decodePayload - an absent payload leaves v at its zero value.
func decodePayload(msg *Message, v any) error {
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", msg.Action, err)
	}

	return nil
}
