// Package logging builds the process slog.Logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps debug, info, warn or error to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return lvl, nil
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Setup builds the process logger. With a non-empty file the output goes to
// a size-rotated log file instead of fallback. The returned close function
// releases the file.
func Setup(level, file string, fallback io.Writer) (*slog.Logger, func() error, error) {
	if file == "" {
		logger, err := New(fallback, level)
		return logger, func() error { return nil }, err
	}

	w := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logger, err := New(w, level)
	if err != nil {
		w.Close()
		return nil, nil, err
	}
	return logger, w.Close, nil
}
