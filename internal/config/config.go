// Package config provides Viper-based configuration loading for the adventure binary.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// BuiltinWorld selects the world authored in Go rather than an embedded YAML file.
const BuiltinWorld = "builtin"

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr" or a file path. Logs never go to stdout, which
	// carries the game itself.
	Output string `mapstructure:"output"`
}

// GameConfig holds settings for playthroughs.
type GameConfig struct {
	// World is BuiltinWorld or the name of an embedded YAML world.
	World string `mapstructure:"world"`
	// WorldFile, when set, loads the world from a YAML file and overrides World.
	WorldFile string `mapstructure:"world_file"`
	// Color enables styled banners.
	Color bool `mapstructure:"color"`
	// ScriptInstructionLimit is the per-call Lua opcode budget. 0 = default.
	// A world file's own script_instruction_limit takes precedence.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
	// DiceSeed seeds the dice used by scripts. 0 = cryptographic randomness.
	DiceSeed int64 `mapstructure:"dice_seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if strings.TrimSpace(l.Output) == "" || l.Output == "stdout" {
		errs = append(errs, fmt.Sprintf("logging.output must be stderr or a file path, got %q", l.Output))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.WorldFile == "" && strings.TrimSpace(g.World) == "" {
		errs = append(errs, "game.world must not be empty when game.world_file is unset")
	}
	if g.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("game.script_instruction_limit must be >= 0, got %d", g.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses defaults
// and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with ADVENTURE_ prefix
	v.SetEnvPrefix("ADVENTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.world", BuiltinWorld)
	v.SetDefault("game.world_file", "")
	v.SetDefault("game.color", false)
	v.SetDefault("game.script_instruction_limit", 0)
	v.SetDefault("game.dice_seed", 0)
}
