package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrComputerTurn   = errors.New("waiting for the computer to move")
	ErrStaleMove      = errors.New("scheduled move belongs to a previous game")
	ErrNoEmptyCells   = errors.New("no available moves")
	ErrScoresNotFound = errors.New("scores not found")
	ErrCorruptScores  = errors.New("stored scores are corrupt")
)
