package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

// connection is the presenter and feedback of one browser. Every call turns into one JSON
// message. Writes are serialized, and after the first failed write the connection goes quiet.
type connection struct {
	logger *slog.Logger
	socket *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func newConnection(logger *slog.Logger, socket *websocket.Conn) *connection {
	return &connection{
		logger: logger,
		socket: socket,
	}
}

func (that *connection) send(action string, payload any) {
	log := that.logger.With("method", "send", "action", action)

	msg := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Error("failed to marshal payload", "error", err)
			return
		}
		msg.Payload = raw
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	if err := that.socket.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Warn("failed to set write deadline", "error", err)
	}

	if err := that.socket.WriteJSON(msg); err != nil {
		log.Warn("failed to write message, dropping connection output", "error", err)
		that.closed = true
	}
}

func (that *connection) sendError(message string) {
	that.send(actionError, errorPayload{Message: message})
}

// close - stops all further writes.
func (that *connection) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
}

func (that *connection) ClearBoard() {
	that.send(actionBoardClear, nil)
}

func (that *connection) RenderMark(cell int, mark entity.Mark) {
	that.send(actionBoardMark, markPayload{Cell: cell, Mark: mark})
}

func (that *connection) HighlightCells(cells []int) {
	that.send(actionBoardHighlight, highlightPayload{Cells: cells})
}

func (that *connection) SetStatusText(text string) {
	that.send(actionStatus, statusPayload{Text: text})
}

func (that *connection) ShowScores(scores entity.Scores) {
	that.send(actionScores, scores)
}

func (that *connection) ShowPlayers(names entity.PlayerNames) {
	that.send(actionPlayers, names)
}

func (that *connection) SetScreen(screen tictactoe.Screen) {
	that.send(actionScreen, screenPayload{Screen: screen})
}

func (that *connection) SetHomeButtonVisible(visible bool) {
	that.send(actionHomeButton, homeButtonPayload{Visible: visible})
}

func (that *connection) PlayWinSound() {
	that.send(actionSound, nil)
}

func (that *connection) Vibrate(pattern []time.Duration) {
	ms := make([]int64, 0, len(pattern))
	for _, d := range pattern {
		ms = append(ms, d.Milliseconds())
	}

	that.send(actionVibrate, vibratePayload{PatternMs: ms})
}
