package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Opponent - returns the mark playing against this one.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusDrawn  Status = "drawn"
)

const BoardSize = 9

type Board [BoardSize]Mark

// WinCombos - rows, then columns, then diagonals. The order decides which line is reported
// when more than one is complete.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Game struct {
	Generation uint64  `json:"generation"`
	Board      Board   `json:"board"`
	Turn       Mark    `json:"turn"`
	Status     Status  `json:"status"`
	Winner     Mark    `json:"winner,omitempty"`
	WinLine    *[3]int `json:"win_line,omitempty"`
	VsComputer bool    `json:"vs_computer"`
}

func NewGame(generation uint64, vsComputer bool) *Game {
	return &Game{
		Generation: generation,
		Turn:       X,
		Status:     StatusActive,
		VsComputer: vsComputer,
	}
}

// CheckWin - returns the first line fully held by mark.
func (that *Game) CheckWin(mark Mark) ([3]int, bool) {
	if mark == Empty {
		return [3]int{}, false
	}

	for _, combo := range WinCombos {
		if that.Board[combo[0]] == mark && that.Board[combo[1]] == mark && that.Board[combo[2]] == mark {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (that *Game) IsFull() bool {
	for _, cell := range that.Board {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that *Game) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that.Board {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

// MakeTurn - places mark on cell and moves the game to its next state.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if !that.IsActive() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != Empty {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark
	that.updateGameState(mark)

	return nil
}

func (that *Game) updateGameState(mark Mark) {
	if line, ok := that.CheckWin(mark); ok {
		that.Status = StatusWon
		that.Winner = mark
		that.WinLine = &line
		return
	}

	// the game will continue until all the squares are full
	if that.IsFull() {
		that.Status = StatusDrawn
		return
	}

	that.Turn = mark.Opponent()
}
