package tictactoe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
)

var errStorageDown = errors.New("storage down")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type scheduledTask struct {
	delay     time.Duration
	f         func()
	cancelled bool
}

type manualScheduler struct {
	mu    sync.Mutex
	tasks []*scheduledTask
}

func (that *manualScheduler) AfterFunc(d time.Duration, f func()) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	task := &scheduledTask{delay: d, f: f}
	that.tasks = append(that.tasks, task)

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		task.cancelled = true
	}
}

func (that *manualScheduler) pending() []*scheduledTask {
	that.mu.Lock()
	defer that.mu.Unlock()

	var live []*scheduledTask
	for _, task := range that.tasks {
		if !task.cancelled {
			live = append(live, task)
		}
	}

	return live
}

// all returns every task scheduled since the last fire, cancelled or not.
func (that *manualScheduler) all() []*scheduledTask {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]*scheduledTask(nil), that.tasks...)
}

// fire runs the queued tasks as if their timers expired. With includeCancelled a timer that
// lost the race with its cancellation still runs.
func (that *manualScheduler) fire(includeCancelled bool) int {
	that.mu.Lock()
	tasks := that.tasks
	that.tasks = nil
	that.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		if task.cancelled && !includeCancelled {
			continue
		}
		task.f()
		ran++
	}

	return ran
}

type recordingPresenter struct {
	mu          sync.Mutex
	board       [entity.BoardSize]entity.Mark
	highlighted []int
	status      string
	scores      entity.Scores
	names       entity.PlayerNames
	screen      Screen
	homeVisible bool
	clears      int
	marks       int
}

func (that *recordingPresenter) ClearBoard() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = [entity.BoardSize]entity.Mark{}
	that.highlighted = nil
	that.clears++
}

func (that *recordingPresenter) RenderMark(cell int, mark entity.Mark) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board[cell] = mark
	that.marks++
}

func (that *recordingPresenter) HighlightCells(cells []int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.highlighted = append([]int(nil), cells...)
}

func (that *recordingPresenter) SetStatusText(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.status = text
}

func (that *recordingPresenter) ShowScores(scores entity.Scores) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scores = scores
}

func (that *recordingPresenter) ShowPlayers(names entity.PlayerNames) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.names = names
}

func (that *recordingPresenter) SetScreen(screen Screen) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.screen = screen
}

func (that *recordingPresenter) SetHomeButtonVisible(visible bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.homeVisible = visible
}

type recordingFeedback struct {
	sounds   int
	patterns [][]time.Duration
}

func (that *recordingFeedback) PlayWinSound() {
	that.sounds++
}

func (that *recordingFeedback) Vibrate(pattern []time.Duration) {
	that.patterns = append(that.patterns, pattern)
}

type failingScores struct{}

func (failingScores) Save(context.Context, entity.Scores) error {
	return errStorageDown
}

func (failingScores) Load(context.Context) (entity.Scores, error) {
	return entity.Scores{}, errStorageDown
}

type fixture struct {
	engine    *GameEngine
	presenter *recordingPresenter
	feedback  *recordingFeedback
	scheduler *manualScheduler
	scores    repository.ScoresRepository
}

func newFixture(ctx context.Context, scores scoresRepo) *fixture {
	if scores == nil {
		scores = repository.NewMemoryScoresRepository()
	}

	f := &fixture{
		presenter: &recordingPresenter{},
		feedback:  &recordingFeedback{},
		scheduler: &manualScheduler{},
	}

	if repo, ok := scores.(repository.ScoresRepository); ok {
		f.scores = repo
	}

	f.engine = NewGameEngine(ctx, discardLogger(), scores, f.presenter, f.feedback, Settings{
		Scheduler: f.scheduler,
		Intn:      func(int) int { return 0 },
	})

	return f
}
