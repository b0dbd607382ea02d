package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	statusDraw        = "Draw!"
	statusScoresReset = "Scores reset! Start a new game."
)

func turnStatus(names entity.PlayerNames, mark entity.Mark) string {
	return fmt.Sprintf("%s's turn (%s)", names.Of(mark), mark)
}

func winStatus(names entity.PlayerNames, mark entity.Mark) string {
	return fmt.Sprintf("%s (%s) wins!", names.Of(mark), mark)
}
