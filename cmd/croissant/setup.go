package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/croissant-rush/internal/audio"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
	"github.com/vovakirdan/croissant-rush/internal/platform/tui"
	"github.com/vovakirdan/croissant-rush/internal/session"
	"github.com/vovakirdan/croissant-rush/internal/storage"
)

// newLogger builds the logger for a command. Without --log-file the
// fallback writer is used.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "croissant",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// game holds everything an interactive command needs.
type game struct {
	cfg    config.Config
	rt     core.RuntimeConfig
	logger *log.Logger
	store  *storage.Store
	player *audio.Player
	runner *session.Runner
	close  func()
}

// openGame loads the kitchen config and opens storage, audio and the
// session runner. A missing database or speaker only disables that part.
func openGame() (*game, error) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		closeLog()
		return nil, err
	}

	g := &game{cfg: cfg, rt: runtimeConfig(), logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		store = nil
	}
	g.store = store

	if flagVolume > 0 {
		g.player = audio.NewPlayer(flagVolume, logger)
		if err := g.player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		}
	}

	opts := []session.Option{session.WithLogger(logger)}
	if flagSeed != 0 {
		opts = append(opts, session.WithSeed(flagSeed))
	}
	if store != nil {
		opts = append(opts, session.WithResultSaver(store))
	}
	g.runner = session.NewRunner(cfg, opts...)

	g.close = func() {
		g.runner.Close()
		if g.player != nil {
			g.player.Close()
		}
		if g.store != nil {
			g.store.Close()
		}
		closeLog()
	}
	return g, nil
}

func (g *game) deps() tui.Deps {
	return tui.Deps{
		Runner: g.runner,
		Store:  g.store,
		Player: g.player,
		Config: g.cfg,
		Logger: g.logger,
	}
}
