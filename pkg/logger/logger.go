// pkg/logger/logger.go

// Package logger configures the process-wide zerolog instance. The internal
// packages log through zerolog's global logger, so Setup must run before
// anything else is constructed.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Log mirrors the global logger for call sites that want an explicit value.
var Log zerolog.Logger

// Setup installs the global logger. Release mode emits plain JSON lines;
// anything else gets the colored console writer.
func Setup(level string, releaseMode bool) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if !releaseMode {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	Log = zerolog.New(out).
		Level(parsed).
		With().
		Timestamp().
		Caller().
		Logger()
	log.Logger = Log
	zerolog.SetGlobalLevel(parsed)
}
