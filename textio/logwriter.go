package textio

import (
	"context"
	"log/slog"
	"strings"
)

// LogWriter is an io.Writer that forwards each non-empty write, trimmed,
// to a structured logger at a fixed level. Callers redirecting an external
// process's output streams hand one of these per stream.
type LogWriter struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (w *LogWriter) Write(p []byte) (int, error) {
	message := strings.TrimSpace(string(p))
	if message != "" {
		w.Logger.Log(context.Background(), w.Level, message)
	}
	return len(p), nil
}
