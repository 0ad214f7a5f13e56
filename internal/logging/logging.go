package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug forces the debug level;
// otherwise level is parsed as a slog level name (DEBUG, INFO, WARN, ERROR)
// and anything unrecognized falls back to WARN.
func New(w io.Writer, debug bool, level string) *slog.Logger {
	lvl := slog.LevelWarn
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = slog.LevelWarn
		}
	}
	if debug {
		lvl = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
