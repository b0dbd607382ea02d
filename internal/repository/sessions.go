package repository

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ScoresFactory - returns the score slot of one browser session.
type ScoresFactory func(sessionID string) ScoresRepository

// RedisSessionScores - keeps every session under its own "<key>:<session>" redis key.
func RedisSessionScores(client *redis.Client, key string) ScoresFactory {
	return func(sessionID string) ScoresRepository {
		return NewScoresRepository(client, key+":"+sessionID)
	}
}

// FileSessionScores - keeps every session in "<name>-<session><ext>" next to path.
func FileSessionScores(path string) ScoresFactory {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	return func(sessionID string) ScoresRepository {
		return NewFileScoresRepository(base + "-" + sessionID + ext)
	}
}

// MemorySessionScores - process-local slots, one per session, shared by every caller.
func MemorySessionScores() ScoresFactory {
	var repos sync.Map

	return func(sessionID string) ScoresRepository {
		repo, _ := repos.LoadOrStore(sessionID, NewMemoryScoresRepository())

		return repo.(ScoresRepository) //nolint: forcetypeassert // only ScoresRepository values are stored
	}
}
