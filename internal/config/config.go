// Package config loads the game configuration from YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/rps-arcade/internal/games/rps"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MemoryJournal is the journal path for an in-memory database.
const MemoryJournal = ":memory:"

// RPSConfig contains all configuration for a Rock Paper Scissors session.
type RPSConfig struct {
	Timing  TimingConfig  `yaml:"timing"`
	Assets  AssetsConfig  `yaml:"assets"`
	Journal JournalConfig `yaml:"journal"`
	Server  ServerConfig  `yaml:"server"`
}

// TimingConfig holds the presentation delays of a round.
type TimingConfig struct {
	CaptionInterval time.Duration `yaml:"caption_interval" env:"RPS_CAPTION_INTERVAL"`
	ScoreHold       time.Duration `yaml:"score_hold" env:"RPS_SCORE_HOLD"`
	Tick            time.Duration `yaml:"tick" env:"RPS_TICK"`
}

// AssetsConfig points at the icon images.
type AssetsConfig struct {
	Dir string `yaml:"dir" env:"RPS_ASSETS_DIR"` // empty = builtin art
}

// JournalConfig configures the round journal database.
type JournalConfig struct {
	Path string `yaml:"path" env:"RPS_JOURNAL"`
}

// ServerConfig configures `rps serve`.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"RPS_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key" env:"RPS_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"RPS_IDLE_TIMEOUT"`
}

// Default returns the built-in configuration.
func Default() RPSConfig {
	t := rps.DefaultTiming()
	return RPSConfig{
		Timing: TimingConfig{
			CaptionInterval: t.CaptionInterval,
			ScoreHold:       t.ScoreHold,
			Tick:            t.Tick,
		},
		Journal: JournalConfig{Path: MemoryJournal},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// RoundTiming converts the timing section for the round machine.
func (c RPSConfig) RoundTiming() rps.Timing {
	return rps.Timing{
		CaptionInterval: c.Timing.CaptionInterval,
		ScoreHold:       c.Timing.ScoreHold,
		Tick:            c.Timing.Tick,
	}
}

// Validate checks the configuration. Failures wrap ErrInvalidConfig.
func (c RPSConfig) Validate() error {
	if err := c.RoundTiming().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("%w: journal path is empty (use %q for an in-memory journal)", ErrInvalidConfig, MemoryJournal)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: idle timeout must not be negative, got %v", ErrInvalidConfig, c.Server.IdleTimeout)
	}
	return nil
}
