package entity

import "strings"

const (
	DefaultPlayerX = "Player 1"
	DefaultPlayerO = "Player 2"
	ComputerName   = "Computer"
)

type PlayerNames struct {
	X string `json:"x"`
	O string `json:"o"`
}

// NewPlayerNames - trims both names and falls back to the defaults for blank ones.
func NewPlayerNames(x, o string) PlayerNames {
	names := PlayerNames{
		X: strings.TrimSpace(x),
		O: strings.TrimSpace(o),
	}

	if names.X == "" {
		names.X = DefaultPlayerX
	}

	if names.O == "" {
		names.O = DefaultPlayerO
	}

	return names
}

func (that PlayerNames) Of(mark Mark) string {
	if mark == O {
		return that.O
	}
	return that.X
}
