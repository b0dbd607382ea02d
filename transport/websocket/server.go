package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	shutdownWait   = 5 * time.Second
)

type gameEngine interface {
	Setup(ctx context.Context, playerX, playerO string)
	SelectCell(ctx context.Context, cell int) error
	Restart(ctx context.Context, vsComputer bool)
	ResetScores(ctx context.Context)
	Home(ctx context.Context)
}

// client is one open socket and the engine it drives.
type client struct {
	sessionID string
	conn      *connection
	engine    gameEngine
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) error

type Server struct {
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	scoresFor repository.ScoresFactory
	settings  tictactoe.Settings

	handlers map[string]handlerFunc
}

// New - every connection gets its own engine built from settings, with the scores of its session.
func New(logger *slog.Logger, scoresFor repository.ScoresFactory, settings tictactoe.Settings) *Server {
	server := &Server{
		logger:    logger.With("component", "websocket"),
		upgrader:  websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		scoresFor: scoresFor,
		settings:  settings,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionSetup] = server.handleSetup
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionResetScores] = server.handleResetScores
	server.handlers[actionHome] = server.handleHome

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server. It returns once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection to WebSocket and runs one engine until the client leaves.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	sessionID, cookie, created := session.Ensure(req)

	log := that.logger.With("method", "serveWS", "session", sessionID)

	header := http.Header{}
	if created {
		header.Add("Set-Cookie", cookie.String())
		log.Info("session cookie not found, new one created")
	}

	socket, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer socket.Close()

	ctx := req.Context()
	conn := newConnection(log, socket)

	c := &client{
		sessionID: sessionID,
		conn:      conn,
		engine: tictactoe.NewGameEngine(
			ctx, that.logger.With("session", sessionID), that.scoresFor(sessionID), conn, conn, that.settings,
		),
	}

	log.Info("WebSocket connection established")

	stopPing := that.keepAlive(socket)

	if err = that.handleMessages(ctx, c, socket); err != nil {
		log.Warn("connection closed unexpectedly", "error", err)
	}

	stopPing()
	conn.close()
	// drops a computer move that is still waiting
	c.engine.Home(ctx)

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client, socket *websocket.Conn) error {
	socket.SetReadLimit(maxMessageSize)

	if err := socket.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	socket.SetPongHandler(func(string) error {
		return socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			return nil
		}

		that.dispatch(ctx, c, data)
	}
}

func (that *Server) dispatch(ctx context.Context, c *client, data []byte) {
	log := that.logger.With("method", "dispatch", "session", c.sessionID)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Debug("failed to unmarshal message", "error", err)
		c.conn.sendError("invalid message")

		return
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Debug("unknown action", "action", msg.Action)
		c.conn.sendError(fmt.Sprintf("unknown action %q", msg.Action))

		return
	}

	if err := handler(ctx, c, &msg); err != nil {
		log.Debug("message rejected", "action", msg.Action, "error", err)
		c.conn.sendError(err.Error())
	}
}

// keepAlive - pings the client so a dead peer trips the read deadline.
func (that *Server) keepAlive(socket *websocket.Conn) (stop func()) {
	done := make(chan struct{})
	ticker := time.NewTicker(pingPeriod)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := socket.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					that.logger.Debug("failed to ping client", "error", err)
					return
				}
			}
		}
	}()

	return func() { close(done) }
}
