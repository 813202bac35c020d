package logging

import (
	"log/slog"
	"os"
)

// SetupJSON replaces slog's default logger with a JSON handler writing
// to stdout at the given level.
func SetupJSON(level slog.Level) {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

// Component returns the default logger tagged with a component attribute,
// so every record from one subsystem carries the same label.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String("component", name))
}
