package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/mattn/go-isatty"

	"Scribe/internal/config"
)

// newLogger builds the process logger writing to out. Interactive terminals get
// devslog output; pipes and files get JSON lines. Debug logging adds source locations.
func newLogger(cfg config.LogConfig, out *os.File) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	fd := out.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(devslog.NewHandler(out, &devslog.Options{HandlerOptions: opts})), nil
	}
	return slog.New(slog.NewJSONHandler(out, opts)).With("service", "scribe"), nil
}
