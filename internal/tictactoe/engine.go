package tictactoe

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const DefaultComputerDelay = 500 * time.Millisecond

type Settings struct {
	ComputerDelay time.Duration
	// Names pre-fill the players until Setup is called.
	Names     entity.PlayerNames
	Scheduler Scheduler
	// Intn returns a uniform integer in [0, n).
	Intn func(n int) int
}

// State is a copy of everything the engine tracks.
type State struct {
	Game        *entity.Game       `json:"game,omitempty"`
	Names       entity.PlayerNames `json:"names"`
	Scores      entity.Scores      `json:"scores"`
	Screen      Screen             `json:"screen"`
	HomeVisible bool               `json:"home_visible"`
	Generation  uint64             `json:"generation"`
}

// GameEngine owns the board, the turn, the scores and the delayed computer reply of one
// playing session. All methods are safe for concurrent use.
type GameEngine struct {
	logger *slog.Logger

	scoresRepo scoresRepo
	presenter  Presenter
	feedback   Feedback
	scheduler  Scheduler
	intn       func(n int) int

	computerDelay time.Duration

	mu            sync.Mutex
	game          *entity.Game
	names         entity.PlayerNames
	setupNames    entity.PlayerNames
	scores        entity.Scores
	screen        Screen
	homeVisible   bool
	generation    uint64
	cancelPending func()
	// pendingSeq identifies the latest scheduled computer reply.
	pendingSeq uint64
}

// NewGameEngine - creates the engine, loads the saved scores and shows the setup screen.
func NewGameEngine(
	ctx context.Context,
	logger *slog.Logger,
	scoresRepo scoresRepo,
	presenter Presenter,
	feedback Feedback,
	settings Settings,
) *GameEngine {
	if feedback == nil {
		feedback = NopFeedback{}
	}

	if settings.Scheduler == nil {
		settings.Scheduler = NewTimerScheduler()
	}

	if settings.Intn == nil {
		settings.Intn = defaultIntn
	}

	if settings.ComputerDelay <= 0 {
		settings.ComputerDelay = DefaultComputerDelay
	}

	names := entity.NewPlayerNames(settings.Names.X, settings.Names.O)

	engine := &GameEngine{
		logger:        logger.With("component", "engine"),
		scoresRepo:    scoresRepo,
		presenter:     presenter,
		feedback:      feedback,
		scheduler:     settings.Scheduler,
		intn:          settings.Intn,
		computerDelay: settings.ComputerDelay,
		names:         names,
		setupNames:    names,
		screen:        ScreenSetup,
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.scores = engine.loadScores(ctx)
	engine.presenter.ShowScores(engine.scores)
	engine.presenter.ShowPlayers(engine.names)
	engine.presenter.SetScreen(ScreenSetup)
	engine.presenter.SetHomeButtonVisible(false)

	return engine
}

// Setup - stores the entered names, switches to the game screen and starts a game against a person.
func (that *GameEngine) Setup(ctx context.Context, playerX, playerO string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.names = entity.NewPlayerNames(playerX, playerO)
	that.setupNames = that.names

	that.presenter.ShowPlayers(that.names)
	that.setScreen(ScreenGame)

	that.startGame(false)
}

// StartGame - resets the board for a new game with X to move.
func (that *GameEngine) StartGame(_ context.Context, vsComputer bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startGame(vsComputer)
}

// Restart - starts a new game, naming O after the computer when it plays.
func (that *GameEngine) Restart(_ context.Context, vsComputer bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if vsComputer {
		that.names.O = entity.ComputerName
	} else {
		that.names.O = that.setupNames.O
	}

	that.presenter.ShowPlayers(that.names)
	that.startGame(vsComputer)
}

// Home - ends the current game and shows the setup screen.
func (that *GameEngine) Home(_ context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelComputerMove()
	that.generation++
	that.game = nil

	that.setScreen(ScreenSetup)
	that.setHomeVisible(false)
}

// SelectCell - a human move for whoever's turn it is. Ignored while the computer is to move.
func (that *GameEngine) SelectCell(ctx context.Context, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return apperror.ErrGameFinished
	}

	if that.game.VsComputer && that.game.Turn == entity.O {
		that.logger.Debug("cell selected during the computer's turn", "cell", cell)
		return apperror.ErrComputerTurn
	}

	return that.applyMove(ctx, cell, that.game.Turn)
}

// ApplyMove - places mark on cell. Moves on a finished game, on an occupied cell or out of turn
// change nothing and report why.
func (that *GameEngine) ApplyMove(ctx context.Context, cell int, mark entity.Mark) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.applyMove(ctx, cell, mark)
}

// ComputerMove - plays O on a random empty cell of a vs-computer game.
func (that *GameEngine) ComputerMove(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.computerMove(ctx, that.generation)
}

// ResetScores - zeroes and saves the scores. The board is left as it is.
func (that *GameEngine) ResetScores(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = entity.Scores{}
	that.saveScores(ctx)

	that.presenter.ShowScores(that.scores)
	that.presenter.SetStatusText(statusScoresReset)
}

func (that *GameEngine) Snapshot() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := State{
		Names:       that.names,
		Scores:      that.scores,
		Screen:      that.screen,
		HomeVisible: that.homeVisible,
		Generation:  that.generation,
	}

	if that.game != nil {
		game := *that.game
		if game.WinLine != nil {
			line := *game.WinLine
			game.WinLine = &line
		}
		state.Game = &game
	}

	return state
}

func (that *GameEngine) startGame(vsComputer bool) {
	that.cancelComputerMove()

	that.generation++
	that.game = entity.NewGame(that.generation, vsComputer)

	that.presenter.ClearBoard()
	that.setHomeVisible(false)
	that.presenter.SetStatusText(turnStatus(that.names, that.game.Turn))

	that.logger.Debug("game started", "generation", that.generation, "vsComputer", vsComputer)
}

func (that *GameEngine) applyMove(ctx context.Context, cell int, mark entity.Mark) error {
	log := that.logger.With("method", "applyMove", "cell", cell, "mark", mark)

	if that.game == nil {
		return apperror.ErrGameFinished
	}

	if err := that.game.MakeTurn(mark, cell); err != nil {
		log.Debug("move ignored", "error", err)
		return err
	}

	that.presenter.RenderMark(cell, mark)

	switch that.game.Status {
	case entity.StatusWon:
		that.finishWon(ctx, mark)
	case entity.StatusDrawn:
		that.presenter.SetStatusText(statusDraw)
		that.setHomeVisible(true)
		log.Info("game drawn", "generation", that.game.Generation)
	default:
		that.presenter.SetStatusText(turnStatus(that.names, that.game.Turn))

		if that.game.VsComputer && that.game.Turn == entity.O {
			that.scheduleComputerMove(ctx)
		}
	}

	return nil
}

func (that *GameEngine) finishWon(ctx context.Context, mark entity.Mark) {
	that.scores.Increment(mark)

	that.presenter.SetStatusText(winStatus(that.names, mark))
	that.presenter.ShowScores(that.scores)
	that.presenter.HighlightCells(that.game.WinLine[:])
	that.setHomeVisible(true)

	that.feedback.PlayWinSound()
	that.feedback.Vibrate(WinVibration)

	that.saveScores(ctx)

	that.logger.Info("game won", "generation", that.game.Generation, "winner", mark, "line", *that.game.WinLine)
}

func (that *GameEngine) scheduleComputerMove(ctx context.Context) {
	that.cancelComputerMove()

	that.pendingSeq++
	seq := that.pendingSeq
	generation := that.generation

	that.cancelPending = that.scheduler.AfterFunc(that.computerDelay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if seq != that.pendingSeq {
			that.logger.Debug("superseded computer move skipped", "generation", generation)
			return
		}

		that.cancelPending = nil

		if err := that.computerMove(ctx, generation); err != nil {
			that.logger.Debug("scheduled computer move skipped", "generation", generation, "error", err)
		}
	})
}

func (that *GameEngine) computerMove(ctx context.Context, generation uint64) error {
	if generation != that.generation {
		return apperror.ErrStaleMove
	}

	if that.game == nil || !that.game.IsActive() {
		return apperror.ErrGameFinished
	}

	if !that.game.VsComputer || that.game.Turn != entity.O {
		return apperror.ErrNotYourTurn
	}

	cell, err := pickComputerCell(that.game, that.intn)
	if err != nil {
		return err
	}

	return that.applyMove(ctx, cell, entity.O)
}

func (that *GameEngine) cancelComputerMove() {
	if that.cancelPending != nil {
		that.cancelPending()
		that.cancelPending = nil
	}
}

func (that *GameEngine) setScreen(screen Screen) {
	that.screen = screen
	that.presenter.SetScreen(screen)
}

func (that *GameEngine) setHomeVisible(visible bool) {
	that.homeVisible = visible
	that.presenter.SetHomeButtonVisible(visible)
}

func (that *GameEngine) loadScores(ctx context.Context) entity.Scores {
	log := that.logger.With("method", "loadScores")

	scores, err := that.scoresRepo.Load(ctx)
	switch {
	case err == nil:
		return scores
	case errors.Is(err, apperror.ErrScoresNotFound):
		log.Debug("no saved scores, starting from zero")
	default:
		log.Warn("could not load scores, starting from zero", "error", err)
	}

	return entity.Scores{}
}

func (that *GameEngine) saveScores(ctx context.Context) {
	if err := that.scoresRepo.Save(ctx, that.scores); err != nil {
		that.logger.Error("failed to save scores", "method", "saveScores", "error", err)
	}
}
