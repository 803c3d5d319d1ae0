package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/genaicheck/pkg/logging"
)

// NewLogger creates a configured logger based on the application configuration.
// A non-nil w replaces the configured output.
func NewLogger(config *Config, w io.Writer) zerolog.Logger {
	level := validateLogLevel(config.LogLevel)

	logConfig := &logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogOutput,
		Writer:     w,
		TimeFormat: "kitchen",
		NoColor:    config.NoColor,
		AddCaller:  level == "debug" || level == "trace",
	}

	return logging.NewLoggerFromConfig(logConfig)
}

// validateLogLevel normalises a log level name. Names are case-insensitive
// and "warning" and "critical" are accepted as aliases. Invalid input warns
// on stderr and falls back to "info".
func validateLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "":
		return "info"
	case "trace", "debug", "info", "warn", "error", "fatal":
		return normalized
	case "warning":
		return "warn"
	case "critical":
		return "fatal"
	}

	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", level, "info")
	return "info"
}
