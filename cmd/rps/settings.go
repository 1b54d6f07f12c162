package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/rps-arcade/internal/config"
	"github.com/vovakirdan/rps-arcade/internal/games/rps"
)

// loadSettings resolves the configuration: files and environment first,
// then any flag the user set explicitly.
func loadSettings(flags *pflag.FlagSet) (config.RPSConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("assets") {
		cfg.Assets.Dir = flagAssets
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = flagJournal
	}
	if flags.Changed("tick") {
		cfg.Timing.Tick = flagTick
	}

	// Flags can break what Load validated
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadIcons returns the builtin art, or the PNG set from dir when one is
// configured. A missing or corrupt image is an *rps.AssetLoadError.
func loadIcons(dir string) (rps.IconSet, error) {
	if dir == "" {
		return rps.BuiltinIcons(), nil
	}
	dir, err := config.HomePath(dir)
	if err != nil {
		return rps.IconSet{}, err
	}
	return rps.LoadIcons(os.DirFS(dir), dir)
}

// describeStartupError adds a hint for the errors a user can fix.
func describeStartupError(err error) error {
	var assetErr *rps.AssetLoadError
	switch {
	case errors.As(err, &assetErr):
		return fmt.Errorf("%w\n(expected %s, %s and %s in the assets directory)",
			err, rps.AssetName(rps.Rock), rps.AssetName(rps.Paper), rps.AssetName(rps.Scissor))
	case errors.Is(err, config.ErrInvalidConfig):
		return fmt.Errorf("%w\n(run 'rps config' to see the effective configuration)", err)
	}
	return err
}

// newFileLogger logs to path, or nowhere when path is empty. The TUI owns
// the terminal, so local play never logs to stdout or stderr.
func newFileLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	path, err := config.HomePath(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "rps",
		Level:           log.DebugLevel,
	})
	return logger, f, nil
}
