package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type fileScores struct {
	mu   sync.Mutex
	path string
}

// NewFileScoresRepository - keeps the scores in a JSON file at path.
func NewFileScoresRepository(path string) ScoresRepository {
	return &fileScores{path: path}
}

func (that *fileScores) Save(_ context.Context, scores entity.Scores) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("could not marshal scores: %w", err)
	}

	dir := filepath.Dir(that.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scores directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("failed to create scores file: %w", err)
	}

	defer os.Remove(tmp.Name()) //nolint: errcheck // gone after a successful rename

	if _, err = tmp.Write(scoresJSON); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write scores file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close scores file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		return fmt.Errorf("failed to replace scores file: %w", err)
	}

	return nil
}

func (that *fileScores) Load(_ context.Context) (entity.Scores, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, err := os.ReadFile(that.path)
	if errors.Is(err, os.ErrNotExist) {
		return entity.Scores{}, apperror.ErrScoresNotFound
	}

	if err != nil {
		return entity.Scores{}, fmt.Errorf("failed to read scores file: %w", err)
	}

	return decodeScores(data)
}
