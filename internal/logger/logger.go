package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var root = zerolog.Nop()

// Initialize configures the process-wide console logger. Diagnostic output
// goes to stderr so the report panel on stdout stays clean.
func Initialize(level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	root = zerolog.New(writer).With().Timestamp().Logger()

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = root
}

// ForComponent returns a child logger tagged with a component field.
func ForComponent(component string) zerolog.Logger {
	return root.With().Str("component", component).Logger()
}
