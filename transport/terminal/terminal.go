package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Run - runs the terminal front end until the player quits or ctx is cancelled.
func Run(ctx context.Context, logger *slog.Logger, engine gameEngine, display *Display) error {
	log := logger.With("component", "terminal")

	program := tea.NewProgram(newModel(ctx, engine, display), tea.WithAltScreen(), tea.WithContext(ctx))

	log.Info("Starting terminal interface")

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal interface failed: %w", err)
	}

	log.Info("Terminal interface stopped")

	return nil
}
