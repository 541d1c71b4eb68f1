package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattsff/courte-rental/internal/config"
)

// New constructs a zerolog logger from config settings.
// Defaults to JSON output at info level on stdout.
func New(cfg *config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel))); err == nil {
		level = parsed
	}

	var out = zerolog.New(os.Stdout)
	if strings.EqualFold(cfg.LogFormat, "console") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return out.
		Level(level).
		With().
		Timestamp().
		Str("app", "courte-rental").
		Logger()
}
