// Package config resolves mathdrill settings from flags, environment
// variables and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// Config holds the resolved settings.
type Config struct {
	// Path is the config file that was consulted (it may not exist).
	Path string

	// Operation starts a drill directly, skipping the menu. Nil shows the menu.
	Operation *problemgen.Operation

	// FeedbackDelay is how long feedback stays up. Default: 1s.
	FeedbackDelay time.Duration

	// DebugLog is a file receiving log output while the UI runs.
	// Empty discards logs.
	DebugLog string
}

// EnvConfig maps environment variables.
type EnvConfig struct {
	ConfigPath    string        `env:"MATHDRILL_CONFIG"`
	Operation     string        `env:"MATHDRILL_OPERATION"`
	FeedbackDelay time.Duration `env:"MATHDRILL_FEEDBACK_DELAY"`
	DebugLog      string        `env:"MATHDRILL_DEBUG_LOG"`
}

// Flags carries command-line overrides. Empty fields are unset.
type Flags struct {
	ConfigPath string
	Operation  string
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	return Config{
		Path:          DefaultConfigPath(),
		FeedbackDelay: session.FeedbackDelay,
	}
}

// ParseEnv loads EnvConfig from the process environment.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load reads the environment and config file and applies flags on top.
// Precedence: flags, then environment, then file, then defaults.
func Load(flags Flags) (Config, error) {
	envCfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}

	path := DefaultConfigPath()
	if envCfg.ConfigPath != "" {
		path = envCfg.ConfigPath
	}
	if flags.ConfigPath != "" {
		path = flags.ConfigPath
	}

	fileCfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Resolve(fileCfg, envCfg, flags)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve merges the three sources over DefaultConfig and validates the result.
func Resolve(file FileConfig, envCfg EnvConfig, flags Flags) (Config, error) {
	cfg := DefaultConfig()

	var opName string
	if file.Drill.Operation != nil {
		opName = *file.Drill.Operation
	}
	if envCfg.Operation != "" {
		opName = envCfg.Operation
	}
	if flags.Operation != "" {
		opName = flags.Operation
	}
	if opName != "" {
		op, err := problemgen.ParseOperation(opName)
		if err != nil {
			return Config{}, fmt.Errorf("operation: %w", err)
		}
		cfg.Operation = &op
	}

	if file.Drill.FeedbackDelay != nil {
		d, err := time.ParseDuration(*file.Drill.FeedbackDelay)
		if err != nil {
			return Config{}, fmt.Errorf("drill.feedback_delay: %w", err)
		}
		cfg.FeedbackDelay = d
	}
	if envCfg.FeedbackDelay != 0 {
		cfg.FeedbackDelay = envCfg.FeedbackDelay
	}
	if cfg.FeedbackDelay <= 0 {
		return Config{}, errors.New("feedback delay must be positive")
	}

	if file.Log.File != nil {
		cfg.DebugLog = *file.Log.File
	}
	if envCfg.DebugLog != "" {
		cfg.DebugLog = envCfg.DebugLog
	}

	return cfg, nil
}
