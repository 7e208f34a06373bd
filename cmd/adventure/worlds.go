package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/content"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/replay"
	"github.com/cory-johannsen/adventure/internal/scripting"
	"github.com/cory-johannsen/adventure/internal/story/tinyhouse"
)

// newWorldFactory selects the world described by cfg and returns a factory
// producing a fresh copy per playthrough, plus a label for logging.
//
// Postcondition: The YAML definition, if any, has been parsed once; each
// factory call builds a new world with its own script VM.
func newWorldFactory(cfg config.GameConfig, logger *zap.Logger) (replay.WorldFactory, string, error) {
	if cfg.WorldFile == "" && cfg.World == config.BuiltinWorld {
		return func() (*world.World, func(), error) {
			return tinyhouse.New(), nil, nil
		}, config.BuiltinWorld, nil
	}

	var (
		def    *world.Definition
		source string
		err    error
	)
	if cfg.WorldFile != "" {
		def, err = world.LoadDefinitionFromFile(cfg.WorldFile)
		source = cfg.WorldFile
	} else {
		def, err = content.Definition(cfg.World)
		source = "embedded:" + cfg.World
	}
	if err != nil {
		return nil, "", err
	}
	if def.ScriptInstructionLimit == 0 {
		def.ScriptInstructionLimit = cfg.ScriptInstructionLimit
	}

	var src dice.Source
	if cfg.DiceSeed != 0 {
		src = dice.NewSeededSource(cfg.DiceSeed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger)

	return func() (*world.World, func(), error) {
		w, m, err := scripting.BuildWorld(def, roller, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("building %s: %w", source, err)
		}
		return w, m.Close, nil
	}, source, nil
}
