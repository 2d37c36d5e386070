package logger

import (
	"io"
	"log/slog"
)

// Setup installs the default slog logger. Verbose runs log at debug
// level; otherwise only warnings and errors reach w.
func Setup(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
