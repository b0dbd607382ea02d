package tictactoe

import (
	"context"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type Screen string

const (
	ScreenSetup Screen = "setup"
	ScreenGame  Screen = "game"
)

// WinVibration - vibration pattern played on a win: buzz, pause, buzz.
var WinVibration = []time.Duration{200 * time.Millisecond, 100 * time.Millisecond, 200 * time.Millisecond}

// Presenter renders the engine's output. It is called while the engine lock is held, so an
// implementation must never call back into the engine.
type Presenter interface {
	ClearBoard()
	RenderMark(cell int, mark entity.Mark)
	HighlightCells(cells []int)
	SetStatusText(text string)
	ShowScores(scores entity.Scores)
	ShowPlayers(names entity.PlayerNames)
	SetScreen(screen Screen)
	SetHomeButtonVisible(visible bool)
}

// Feedback plays the win cues. Hosts without a capability do nothing.
type Feedback interface {
	PlayWinSound()
	Vibrate(pattern []time.Duration)
}

type scoresRepo interface {
	Save(ctx context.Context, scores entity.Scores) error
	Load(ctx context.Context) (entity.Scores, error)
}

type NopFeedback struct{}

func (NopFeedback) PlayWinSound() {}

func (NopFeedback) Vibrate([]time.Duration) {}
