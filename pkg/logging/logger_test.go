package logging_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/genaicheck/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, "error message") {
		t.Errorf("Expected error message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithStep(ctx, "refresh")
	ctx = logging.WithProject(ctx, "demo")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"step":"refresh"`)
	testLogger.AssertContains(t, `"project":"demo"`)
	testLogger.AssertContains(t, "test message")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	if logging.FromContext(nil) != logging.Default() {
		t.Error("nil context should yield the default logger")
	}
	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("empty context should yield the default logger")
	}
}

func TestStackCarriesErrorChain(t *testing.T) {
	tl := logging.NewTestLogger(t)

	base := errors.New("invalid_grant")
	err := fmt.Errorf("token: %w", base)

	tl.Logger.Error().Stack().Err(err).Msg("with stack")
	tl.Logger.Error().Err(err).Msg("without stack")

	entries := tl.Entries(t)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	stack, ok := entries[0]["stack"].([]any)
	if !ok {
		t.Fatalf("expected stack array, got %#v", entries[0]["stack"])
	}
	if len(stack) != 2 || stack[1] != "invalid_grant" {
		t.Errorf("unexpected stack: %#v", stack)
	}
	if _, found := entries[1]["stack"]; found {
		t.Error("stack must only be present when requested")
	}
}

func TestMarshalErrorChainNil(t *testing.T) {
	if got := logging.MarshalErrorChain(nil); got != nil {
		t.Errorf("expected nil, got %#v", got)
	}
}

func TestConfiguration(t *testing.T) {
	configs := []struct {
		name   string
		config *logging.Config
		check  func(t *testing.T, output string)
	}{
		{
			name:   "debug level",
			config: &logging.Config{Level: "debug", Format: "json"},
			check: func(t *testing.T, output string) {
				if !strings.Contains(output, `"level":"debug"`) {
					t.Errorf("Expected debug level in output")
				}
			},
		},
		{
			name:   "upper case level",
			config: &logging.Config{Level: "ERROR", Format: "json"},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level":"info"`) {
					t.Errorf("Should not contain info level when set to ERROR")
				}
			},
		},
		{
			name:   "console format",
			config: &logging.Config{Level: "info", Format: "console", NoColor: true},
			check: func(t *testing.T, output string) {
				if strings.Contains(output, `"level"`) {
					t.Errorf("Console output should not be JSON: %s", output)
				}
				if !strings.Contains(output, "INF") {
					t.Errorf("Console output should carry level abbreviation: %s", output)
				}
			},
		},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tc.config.Writer = buf
			logger := logging.NewLoggerFromConfig(tc.config)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			tc.check(t, buf.String())
		})
	}
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Err(nil).Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertContains(t, "message 2")
	tl.AssertNotContains(t, "message 3")

	if tl.Count() != 2 {
		t.Errorf("expected 2 entries, got %d", tl.Count())
	}
	if !tl.ContainsAll("message 1", "message 2") {
		t.Error("Should contain both messages")
	}
	if got := tl.EntriesWithMessage(t, "message 2"); len(got) != 1 {
		t.Errorf("expected one entry for message 2, got %d", len(got))
	}

	tl.Clear()
	if tl.Count() != 0 {
		t.Error("Should have 0 entries after clear")
	}
}
