package websocket

import (
	"context"
	"errors"
)

var ErrCellRequired = errors.New("cell is required")

func (that *Server) handleSetup(ctx context.Context, c *client, msg *Message) error {
	var payload setupPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	c.engine.Setup(ctx, payload.PlayerX, payload.PlayerO)

	return nil
}

// handleTurn - a refused move changes nothing and is not reported back.
func (that *Server) handleTurn(ctx context.Context, c *client, msg *Message) error {
	var payload turnPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	if payload.Cell == nil {
		return ErrCellRequired
	}

	if err := c.engine.SelectCell(ctx, *payload.Cell); err != nil {
		that.logger.Debug("move ignored", "method", "handleTurn", "session", c.sessionID, "cell", *payload.Cell, "error", err)
	}

	return nil
}

func (that *Server) handleRestart(ctx context.Context, c *client, msg *Message) error {
	var payload restartPayload
	if err := decodePayload(msg, &payload); err != nil {
		return err
	}

	c.engine.Restart(ctx, payload.VsComputer)

	return nil
}

func (that *Server) handleResetScores(ctx context.Context, c *client, _ *Message) error {
	c.engine.ResetScores(ctx)

	return nil
}

func (that *Server) handleHome(ctx context.Context, c *client, _ *Message) error {
	c.engine.Home(ctx)

	return nil
}
