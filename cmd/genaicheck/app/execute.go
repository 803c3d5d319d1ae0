package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/genaicheck/internal/diag"
	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// Execute runs the genaicheck CLI with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command. Running it without a
// subcommand performs the diagnostic.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "genaicheck",
		Short: "Diagnose Google Cloud credentials and list reachable GenAI models",
		Long: `genaicheck inspects the Application Default Credentials active on this
host, refreshes them, and lists the generative AI models they can reach on
Vertex AI or the Gemini API.

Credential resolution failure is the only fatal error; refresh and listing
failures are logged and the run still exits 0.`,
		Version:           a.version,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDiagnostic(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.genaicheck.yaml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error (case-insensitive)")
	flags.String("log-format", "auto", "log format: auto, console, json")
	flags.Bool("verbose-errors", false, "include the full error chain in error logs")

	local := rootCmd.Flags()
	local.String("project", "", "Google Cloud project (default: $GOOGLE_CLOUD_PROJECT or the ADC project)")
	local.String("location", "", "Vertex AI location (default: $GOOGLE_CLOUD_LOCATION or "+constants.DefaultLocation+")")
	local.Bool("vertexai", a.config.VertexAI,
		"use the Vertex AI backend instead of the Gemini API (default: $GOOGLE_GENAI_USE_VERTEXAI, true if unset)")
	local.String("catalog-client", "genai", "catalog client library: genai or legacy")
	local.String("credentials-file", "", "load credentials from this file instead of the ambient search")
	local.Bool("show-secrets", false, "do not mask *_KEY values in the environment dump")
	local.String("report", "", "write a YAML report of the run to this path")
	local.StringSlice("env-vars", constants.DefaultEnvVars, "environment variables to dump")

	rootCmd.SetVersionTemplate("genaicheck {{.Version}}\n")
	rootCmd.AddCommand(a.newVersionCommand())

	return rootCmd
}

// setupCommand merges parsed flags into the configuration and rebuilds the
// logger before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if err := a.viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if cmd.Flags().Changed("config") {
		if err := readConfigFile(a.viper, a.viper.GetString("config")); err != nil {
			return err
		}
	}

	a.config = configFromViper(a.viper)
	a.setLogger(NewLogger(a.config, a.logWriter))

	a.logger.Debug().
		Str("config_file", a.config.ConfigFile).
		Bool("vertexai", a.config.VertexAI).
		Str("catalog_client", a.config.CatalogClient).
		Msg("Configuration loaded")

	return nil
}

// runDiagnostic runs every diagnostic step against the configured collaborators.
func (a *App) runDiagnostic(ctx context.Context) error {
	opts, err := a.runnerOptions()
	if err != nil {
		return err
	}

	ctx = logging.WithLogger(ctx, a.logger)
	runOpts := append([]diag.Option{diag.WithLogger(a.logger)}, a.runOpts...)
	runner := diag.New(a.Resolver(), a.listers, opts, runOpts...)

	_, err = runner.Run(ctx)
	return err
}

// newVersionCommand prints build information.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the genaicheck CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := a.out(cmd)
			fmt.Fprintf(out, "genaicheck version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (a *App) out(cmd *cobra.Command) io.Writer {
	if a.stdout != nil {
		return a.stdout
	}
	return cmd.OutOrStdout()
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
