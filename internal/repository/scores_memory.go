package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type memoryScores struct {
	mu     sync.Mutex
	scores *entity.Scores
}

func NewMemoryScoresRepository() ScoresRepository {
	return &memoryScores{}
}

func (that *memoryScores) Save(_ context.Context, scores entity.Scores) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = &scores

	return nil
}

func (that *memoryScores) Load(_ context.Context) (entity.Scores, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.scores == nil {
		return entity.Scores{}, apperror.ErrScoresNotFound
	}

	return *that.scores, nil
}
