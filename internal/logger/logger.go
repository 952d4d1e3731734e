package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

func init() {
	level := slog.LevelInfo
	if os.Getenv("NOVIA_DEBUG") == "true" {
		level = slog.LevelDebug
	}

	// The TUI owns the terminal, so logs go to a file. Falling back to
	// a discard handler keeps logging from ever breaking startup.
	path := os.Getenv("NOVIA_LOG")
	if path == "" {
		path = "debug.log"
	}

	var out io.Writer
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		out = io.Discard
	} else {
		out = f
	}

	opts := &slog.HandlerOptions{Level: level}
	handler := slog.NewTextHandler(out, opts)
	log = slog.New(handler)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
