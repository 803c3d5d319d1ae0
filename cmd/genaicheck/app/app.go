// Package app provides the application context and dependency management
// for the genaicheck CLI: configuration, logging and the collaborators the
// diagnostic needs.
package app

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/genaicheck/internal/auth/adc"
	"github.com/agentstation/genaicheck/internal/catalog"
	"github.com/agentstation/genaicheck/internal/diag"
	"github.com/agentstation/genaicheck/internal/transport"
	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// App represents the genaicheck application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	viper  *viper.Viper

	// Logger
	logger    *zerolog.Logger
	logWriter io.Writer
	stdout    io.Writer

	// Collaborators, replaced in tests
	resolver diag.CredentialResolver
	listers  catalog.Factory
	runOpts  []diag.Option
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		listers: catalog.New,
	}

	config, v, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config
	app.viper = v

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	logger := NewLogger(app.config, app.logWriter)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Resolver returns the credential resolver, building the ADC detector
// from the configuration unless one was injected.
func (a *App) Resolver() diag.CredentialResolver {
	if a.resolver != nil {
		return a.resolver
	}

	opts := []adc.DetectorOption{
		adc.WithScopes(constants.ScopeCloudPlatform, constants.ScopeGenerativeLanguage),
		adc.WithHTTPClient(transport.New(transport.WithUserAgent(transport.UserAgent(a.version)))),
	}
	if a.config.CredentialsFile != "" {
		opts = append(opts, adc.WithCredentialsFile(a.config.CredentialsFile))
	}
	return adc.NewDetector(opts...)
}

// runnerOptions translates the configuration into diagnostic options.
func (a *App) runnerOptions() (diag.Options, error) {
	client, err := catalog.ParseClientVersion(a.config.CatalogClient)
	if err != nil {
		return diag.Options{}, err
	}

	return diag.Options{
		Project:       a.config.Project,
		Location:      a.config.Location,
		Backend:       catalog.BackendFor(a.config.VertexAI),
		Client:        client,
		APIKey:        a.config.APIKey,
		VerboseErrors: a.config.VerboseErrors,
		ShowSecrets:   a.config.ShowSecrets,
		EnvVars:       a.config.EnvVars,
		ReportPath:    a.config.ReportPath,
	}, nil
}

// ReportError logs a fatal error, with its chain when verbose errors are on.
func (a *App) ReportError(err error) {
	event := a.logger.Error()
	if a.config.VerboseErrors {
		event = event.Stack()
	}
	msg := "genaicheck failed"
	if errors.IsNoCredentials(err) {
		msg = "Could not resolve ambient credentials"
	}
	event.Err(err).Msg(msg)
}

func (a *App) setLogger(logger zerolog.Logger) {
	a.logger = &logger
	logging.SetDefault(logger)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithLogOutput sends logs to w instead of the configured output.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) error {
		a.logWriter = w
		return nil
	}
}

// WithStdout redirects command output such as the version banner.
func WithStdout(w io.Writer) Option {
	return func(a *App) error {
		a.stdout = w
		return nil
	}
}

// WithResolver sets a custom credential resolver (useful for testing).
func WithResolver(resolver diag.CredentialResolver) Option {
	return func(a *App) error {
		a.resolver = resolver
		return nil
	}
}

// WithListerFactory sets a custom catalog factory (useful for testing).
func WithListerFactory(factory catalog.Factory) Option {
	return func(a *App) error {
		if factory == nil {
			return errors.NewValidationError("factory", nil, "lister factory must not be nil")
		}
		a.listers = factory
		return nil
	}
}

// WithRunnerOptions passes extra options to the diagnostic runner.
func WithRunnerOptions(opts ...diag.Option) Option {
	return func(a *App) error {
		a.runOpts = append(a.runOpts, opts...)
		return nil
	}
}
