package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ytget/ytrelay/internal/bot"
	"github.com/ytget/ytrelay/internal/config"
	"github.com/ytget/ytrelay/internal/download"
	"github.com/ytget/ytrelay/internal/fsutil"
	"github.com/ytget/ytrelay/internal/health"
	"github.com/ytget/ytrelay/internal/janitor"
	"github.com/ytget/ytrelay/internal/logger"
	"github.com/ytget/ytrelay/internal/metrics"
	"github.com/ytget/ytrelay/internal/resolve"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName         = "ytrelay"
	shutdownTimeout = 10 * time.Second
)

// app wires the services together and owns their lifecycle. Shutdown is
// driven by one signal-registered context in main, nothing inside the
// pipeline installs its own handlers.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	telegram *bot.Telegram
	router   *bot.Router
	health   *health.Server
	janitor  *janitor.Janitor
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	if err := fsutil.EnsureDir(cfg.Download.OutputRoot); err != nil {
		return nil, fmt.Errorf("failed to ensure output root: %w", err)
	}

	m := metrics.New(AppName)
	youtube := resolve.NewYouTube(log.Logger)

	orchestrator := download.NewOrchestrator(
		youtube,
		youtube,
		cfg.Download.OutputRoot,
		cfg.Download.MaxRetries,
		cfg.Download.RetryDelay(),
		log.Logger,
		m,
	)

	telegram, err := bot.NewTelegram(cfg.Telegram.Token, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		telegram: telegram,
		router:   bot.NewRouter(orchestrator, youtube, telegram, cfg.Telegram.AllowedUserIDs, log.Logger),
	}

	if cfg.Health.Enabled {
		a.health = health.New(cfg.Health.Address(), version, log.Logger)
	}
	if cfg.Janitor.Enabled {
		a.janitor, err = janitor.New(cfg.Download.OutputRoot, cfg.Janitor.Interval(), log.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create janitor: %w", err)
		}
	}

	return a, nil
}

// run blocks on the telegram poll loop until ctx is cancelled, then stops
// the auxiliary services.
func (a *app) run(ctx context.Context) error {
	if a.health != nil {
		go func() {
			if err := a.health.Start(); err != nil {
				a.log.Error().Err(err).Msg("health server failed")
			}
		}()
	}
	if a.janitor != nil {
		if err := a.janitor.Start(); err != nil {
			return fmt.Errorf("failed to start janitor: %w", err)
		}
	}

	err := a.telegram.Run(ctx, a.router.HandleMessage)

	a.stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.janitor != nil {
		if err := a.janitor.Stop(); err != nil {
			a.log.Warn().Err(err).Msg("janitor shutdown failed")
		}
	}
	if a.health != nil {
		if err := a.health.Shutdown(ctx); err != nil {
			a.log.Warn().Err(err).Msg("health server shutdown failed")
		}
	}
}

func main() {
	// Local development convenience, missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("YTRELAY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", AppName, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	log.Info().Str("version", version).Msg("ytrelay starting")

	a, err := newApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
	log.Info().Msg("ytrelay stopped")
}
