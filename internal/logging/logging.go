// Package logging builds the process logger from config.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"taskscreen/internal/config"
)

var levelMap = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to a slog level. Unknown names map to WARN.
func ParseLevel(name string) slog.Level {
	level, ok := levelMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return slog.LevelWarn
	}
	return level
}

// New returns a logger for cfg. Output goes to cfg.Log.File as JSON when
// set, otherwise to stderr as text. cfg.Debug forces DEBUG.
// The returned closer releases the log file, if any.
func New(cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Log.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}

	if cfg.Log.File == "" {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
		return slog.New(h), nopCloser{}, nil
	}

	path := cfg.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	return slog.New(h), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
