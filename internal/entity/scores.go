package entity

type Scores struct {
	X int `json:"x"`
	O int `json:"o"`
}

func (that *Scores) Increment(mark Mark) {
	switch mark {
	case X:
		that.X++
	case O:
		that.O++
	}
}

func (that Scores) IsValid() bool {
	return that.X >= 0 && that.O >= 0
}
