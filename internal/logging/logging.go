// Package logging configures the structured log written next to the
// database
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// EnvLevel overrides the log level when set to debug, info, warn or error.
const EnvLevel = "FOCUSLOG_LOG_LEVEL"

// New returns a JSON logger writing to a size-rotated file at path. The
// returned closer releases the file.
func New(path string, level slog.Leveler) (*slog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(h), w
}

// Setup installs a file logger as the slog default.
func Setup(path string) io.Closer {
	l, closer := New(path, LevelFromEnv())

	slog.SetDefault(l)

	return closer
}

// LevelFromEnv reads the log level from EnvLevel, defaulting to info.
func LevelFromEnv() slog.Level {
	var level slog.Level

	v := strings.TrimSpace(os.Getenv(EnvLevel))
	if v == "" {
		return slog.LevelInfo
	}

	if err := level.UnmarshalText([]byte(v)); err != nil {
		return slog.LevelInfo
	}

	return level
}
