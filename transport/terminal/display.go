package terminal

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type displayState struct {
	board       entity.Board
	highlighted [entity.BoardSize]bool
	status      string
	scores      entity.Scores
	names       entity.PlayerNames
	screen      tictactoe.Screen
	homeVisible bool
}

// Display is the terminal presenter. The engine writes into it from any goroutine; the
// bubbletea model reads a copy when it renders and is woken through Changes.
type Display struct {
	mu      sync.Mutex
	state   displayState
	changes chan struct{}
}

func NewDisplay() *Display {
	return &Display{
		state:   displayState{screen: tictactoe.ScreenSetup},
		changes: make(chan struct{}, 1),
	}
}

func (that *Display) Changes() <-chan struct{} {
	return that.changes
}

func (that *Display) ClearBoard() {
	that.update(func(state *displayState) {
		state.board = entity.Board{}
		state.highlighted = [entity.BoardSize]bool{}
	})
}

func (that *Display) RenderMark(cell int, mark entity.Mark) {
	that.update(func(state *displayState) {
		state.board[cell] = mark
	})
}

func (that *Display) HighlightCells(cells []int) {
	that.update(func(state *displayState) {
		for _, cell := range cells {
			state.highlighted[cell] = true
		}
	})
}

func (that *Display) SetStatusText(text string) {
	that.update(func(state *displayState) {
		state.status = text
	})
}

func (that *Display) ShowScores(scores entity.Scores) {
	that.update(func(state *displayState) {
		state.scores = scores
	})
}

func (that *Display) ShowPlayers(names entity.PlayerNames) {
	that.update(func(state *displayState) {
		state.names = names
	})
}

func (that *Display) SetScreen(screen tictactoe.Screen) {
	that.update(func(state *displayState) {
		state.screen = screen
	})
}

func (that *Display) SetHomeButtonVisible(visible bool) {
	that.update(func(state *displayState) {
		state.homeVisible = visible
	})
}

func (that *Display) snapshot() displayState {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

func (that *Display) update(apply func(state *displayState)) {
	that.mu.Lock()
	apply(&that.state)
	that.mu.Unlock()

	// one pending wake-up is enough, the model renders the latest state
	select {
	case that.changes <- struct{}{}:
	default:
	}
}
