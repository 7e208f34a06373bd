// Package main provides the adventure binary: a single-player text adventure
// played on stdin and stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/content"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/engine"
	"github.com/cory-johannsen/adventure/internal/observability"
	"github.com/cory-johannsen/adventure/internal/replay"
	"github.com/cory-johannsen/adventure/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = defaults and ADVENTURE_* environment only")
	worldName := flag.String("world", "", "world to play: \"builtin\" or an embedded world name (overrides config)")
	worldFile := flag.String("world-file", "", "path to a YAML world file (overrides -world)")
	color := flag.Bool("color", false, "render banners in color (overrides config when set)")
	listWorlds := flag.Bool("list-worlds", false, "list the embedded worlds and exit")
	flag.Parse()

	if *listWorlds {
		fmt.Println(config.BuiltinWorld)
		for _, name := range content.Names() {
			fmt.Println(name)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "world":
			cfg.Game.World = *worldName
		case "world-file":
			cfg.Game.WorldFile = *worldFile
		case "color":
			cfg.Game.Color = *color
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating flags: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	factory, source, err := newWorldFactory(cfg.Game, logger)
	if err != nil {
		logger.Fatal("selecting world", zap.Error(err))
	}
	logger.Info("starting adventure", zap.String("world", source))

	styles := console.PlainStyles()
	if cfg.Game.Color {
		styles = console.ColorStyles()
	}
	term := console.New(os.Stdin, os.Stdout, console.WithStyles(styles))
	driver := replay.New(factory, term, logger, engine.WithStyles(styles))

	lc := server.NewLifecycle(logger)
	err = lc.Run(context.Background(), "replay", func(ctx context.Context) error {
		games, err := driver.Run(ctx)
		logger.Info("replay loop finished", zap.Int("games", games))
		return err
	})
	if err != nil && !errors.Is(err, server.ErrInterrupted) {
		logger.Error("adventure stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
