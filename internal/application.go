package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
	"github.com/rocketscienceinc/tictactoe/transport/websocket"
)

var (
	ErrAddrNotFound        = errors.New("redis address string is empty")
	ErrUnknownInterface    = errors.New("unknown interface")
	ErrUnknownScoresDriver = errors.New("unknown scores driver")
)

// scoreStores - the single slot used by the terminal and the per-session slots used by the web.
type scoreStores struct {
	single     repository.ScoresRepository
	perSession repository.ScoresFactory
	close      func()
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	stores, err := openScoreStores(ctx, logger, conf)
	if err != nil {
		return err
	}

	defer stores.close()

	settings := tictactoe.Settings{
		ComputerDelay: conf.Game.ComputerDelay,
		Names:         entity.PlayerNames{X: conf.Game.PlayerX, O: conf.Game.PlayerO},
	}

	switch conf.Interface {
	case config.InterfaceTerminal:
		return runTerminal(ctx, logger, stores.single, settings)
	case config.InterfaceWeb:
		return runWeb(ctx, logger, conf, stores.perSession, settings)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownInterface, conf.Interface)
	}
}

func openScoreStores(ctx context.Context, logger *slog.Logger, conf *config.Config) (*scoreStores, error) {
	log := logger.With("method", "openScoreStores", "driver", conf.Scores.Driver)

	switch conf.Scores.Driver {
	case config.ScoresDriverRedis:
		if conf.Redis.Host == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &scoreStores{
			single:     repository.NewScoresRepository(redisStorage.Connection, conf.Scores.Key),
			perSession: repository.RedisSessionScores(redisStorage.Connection, conf.Scores.Key),
			close: func() {
				if err := redisStorage.Close(); err != nil {
					log.Error("could not close redis storage", "error", err)
				}
			},
		}, nil

	case config.ScoresDriverFile:
		return &scoreStores{
			single:     repository.NewFileScoresRepository(conf.Scores.FilePath),
			perSession: repository.FileSessionScores(conf.Scores.FilePath),
			close:      func() {},
		}, nil

	case config.ScoresDriverMemory:
		return &scoreStores{
			single:     repository.NewMemoryScoresRepository(),
			perSession: repository.MemorySessionScores(),
			close:      func() {},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScoresDriver, conf.Scores.Driver)
	}
}

func runTerminal(
	ctx context.Context,
	logger *slog.Logger,
	scoresRepo repository.ScoresRepository,
	settings tictactoe.Settings,
) error {
	display := terminal.NewDisplay()
	bell := terminal.NewBell(logger, os.Stderr)

	engine := tictactoe.NewGameEngine(ctx, logger, scoresRepo, display, bell, settings)

	if err := terminal.Run(ctx, logger, engine, display); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}

func runWeb(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Config,
	scoresFor repository.ScoresFactory,
	settings tictactoe.Settings,
) error {
	log := logger.With("component", "app")

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, scoresFor).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, scoresFor, settings)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
