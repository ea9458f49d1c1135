package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/snek/internal/assets"
	"github.com/plus3/snek/internal/config"
	"github.com/plus3/snek/internal/frontend/terminal"
	"github.com/plus3/snek/internal/frontend/window"
	"github.com/plus3/snek/internal/game"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	logger, closeLog := newLogger(cfg)
	defer closeLog()

	g, err := game.New(cfg.Game(), logger, cfg.Rand())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}

	switch cfg.Frontend {
	case config.FrontendTerminal:
		err = runTerminal(g, cfg, logger)
	default:
		err = runWindow(g, cfg, logger)
	}
	if err != nil {
		closeLog()
		log.Fatal().Err(err).Msg("game exited")
	}

	stats := g.Stats()
	logger.Info().
		Uint64("ticks", stats.Ticks).
		Int("apples", stats.Apples).
		Int("deaths", stats.Deaths).
		Int("best_length", stats.BestLength).
		Msg("session over")
}

// newLogger writes to the console unless the terminal frontend owns the
// screen, in which case output goes to LogFile or nowhere.
func newLogger(cfg config.Config) (zerolog.Logger, func()) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	closeLog := func() {}

	if cfg.Frontend == config.FrontendTerminal {
		out = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				log.Fatal().Err(err).Str("path", cfg.LogFile).Msg("failed to open log file")
			}
			out = f
			closeLog = func() { _ = f.Close() }
		}
	}

	return zerolog.New(out).With().Timestamp().Logger(), closeLog
}

func runTerminal(g *game.Game, cfg config.Config, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.New(screen, g, cfg.GameOverPause, logger).Run(ctx)
}

func runWindow(g *game.Game, cfg config.Config, logger zerolog.Logger) error {
	sprites, err := assets.Load()
	if err != nil {
		return err
	}

	w := window.New(g, sprites, window.Options{
		Title:    "Snake",
		CellSize: cfg.CellSize,
		Pause:    cfg.GameOverPause,
		DebugUI:  cfg.DebugUI,
	}, logger)
	return w.Run()
}
