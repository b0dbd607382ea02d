package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// ScoresRepository - a single named slot holding {"x": <int>, "o": <int>}.
type ScoresRepository interface {
	Save(ctx context.Context, scores entity.Scores) error
	Load(ctx context.Context) (entity.Scores, error)
}

type dbScores struct {
	client *redis.Client
	key    string
}

func NewScoresRepository(client *redis.Client, key string) ScoresRepository {
	return &dbScores{
		client: client,
		key:    key,
	}
}

func (that *dbScores) Save(ctx context.Context, scores entity.Scores) error {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("could not marshal scores: %w", err)
	}

	if err = that.client.Set(ctx, that.key, scoresJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set scores: %w", err)
	}

	return nil
}

func (that *dbScores) Load(ctx context.Context) (entity.Scores, error) {
	response, err := that.client.Get(ctx, that.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Scores{}, apperror.ErrScoresNotFound
	}

	if err != nil {
		return entity.Scores{}, fmt.Errorf("failed to get scores: %w", err)
	}

	return decodeScores(response)
}

func decodeScores(data []byte) (entity.Scores, error) {
	var scores entity.Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		return entity.Scores{}, fmt.Errorf("%w: %w", apperror.ErrCorruptScores, err)
	}

	if !scores.IsValid() {
		return entity.Scores{}, fmt.Errorf("%w: negative score", apperror.ErrCorruptScores)
	}

	return scores, nil
}
