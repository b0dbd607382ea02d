package terminal

import (
	"io"
	"log/slog"
	"time"
)

const bell = "\a"

// Bell rings the terminal bell on a win. Terminals cannot vibrate.
type Bell struct {
	logger *slog.Logger
	out    io.Writer
}

func NewBell(logger *slog.Logger, out io.Writer) *Bell {
	return &Bell{
		logger: logger.With("component", "bell"),
		out:    out,
	}
}

func (that *Bell) PlayWinSound() {
	if _, err := io.WriteString(that.out, bell); err != nil {
		that.logger.Debug("could not ring the bell", "error", err)
	}
}

func (that *Bell) Vibrate(pattern []time.Duration) {
	that.logger.Debug("vibration is not supported by terminals", "pattern", pattern)
}
