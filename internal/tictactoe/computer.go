package tictactoe

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// pickComputerCell - chooses uniformly among the empty cells of the board.
func pickComputerCell(game *entity.Game, intn func(n int) int) (int, error) {
	availableCells := game.EmptyCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoEmptyCells
	}

	return availableCells[intn(len(availableCells))], nil
}

func defaultIntn(n int) int {
	return rand.IntN(n) //nolint: gosec // move choice, not a secret
}
