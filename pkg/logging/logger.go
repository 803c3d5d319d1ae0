// Package logging provides structured logging for genaicheck using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("project", "demo").Msg("Resolved target")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
//
//	// Attach the unwrapped error chain under the "stack" key
//	log.Error().Stack().Err(err).Msg("Failed to refresh credentials")
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentstation/genaicheck/pkg/errors"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = MarshalErrorChain
	defaultLogger = createDefaultLogger()
}

// MarshalErrorChain renders an error and everything it wraps as a list of
// messages. It is installed as zerolog.ErrorStackMarshaler, so events built
// with Stack() carry the chain under the "stack" key.
func MarshalErrorChain(err error) any {
	chain := errors.Chain(err)
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// createDefaultLogger creates a logger with default settings.
func createDefaultLogger() zerolog.Logger {
	var writer io.Writer = os.Stderr
	if isTerminal(os.Stderr) && os.Getenv("LOG_FORMAT") != "json" {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	if os.Getenv("LOG_LEVEL") == "" && os.Getenv("DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}
