// Package diag runs the credential and model catalog diagnostic: it
// resolves the ambient credential, describes it, refreshes it and lists the
// models it can reach. Only credential resolution is fatal; every later
// step logs its failure and lets the run continue.
package diag

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/genaicheck/internal/auth/adc"
	"github.com/agentstation/genaicheck/internal/catalog"
	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// CredentialResolver locates the ambient credential and the project it
// implies. *adc.Detector is the production implementation.
type CredentialResolver interface {
	Resolve(ctx context.Context) (adc.Credential, string, error)
}

// Options configures a run.
type Options struct {
	Project  string
	Location string

	Backend catalog.Backend
	Client  catalog.ClientVersion
	APIKey  string

	VerboseErrors bool
	ShowSecrets   bool

	// EnvVars are dumped after scope resolution. Empty means the default five.
	EnvVars []string

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string

	// HTTPClient is handed to the catalog client.
	HTTPClient *http.Client
}

// Runner executes the diagnostic.
type Runner struct {
	resolver CredentialResolver
	listers  catalog.Factory
	opts     Options

	logger  *zerolog.Logger
	lookup  LookupFunc
	details func() *adc.Details
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. By default the context logger is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup LookupFunc) Option {
	return func(r *Runner) {
		r.lookup = lookup
	}
}

// WithDetails replaces adc.BuildDetails.
func WithDetails(fn func() *adc.Details) Option {
	return func(r *Runner) {
		r.details = fn
	}
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner. A nil listers uses catalog.New.
func New(resolver CredentialResolver, listers catalog.Factory, opts Options, options ...Option) *Runner {
	r := &Runner{
		resolver: resolver,
		listers:  listers,
		opts:     opts,
		lookup:   os.LookupEnv,
		details:  adc.BuildDetails,
		now:      time.Now,
	}
	if r.listers == nil {
		r.listers = catalog.New
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Run executes every step in order. The error is non-nil only when no
// credential could be resolved.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	ctx = logging.WithLogger(ctx, logger)

	report := &Report{GeneratedAt: utc.Time{Time: r.now().UTC()}}

	cred, inferredProject, err := r.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	report.Credential = Classify(cred)
	r.describe(ctx, logger, cred, report)

	scope, ok := ResolveScope(r.opts.Project, r.opts.Location, inferredProject, r.lookup)
	if !ok {
		noProject := errors.NewConfigError("scope", "no project could be determined", errors.ErrNoProject)
		logger.Error().Err(noProject).Msg("No project could be determined. Provide --project or set GOOGLE_CLOUD_PROJECT.")
		r.writeReport(logger, report)
		return report, nil
	}
	report.Scope = &scope
	ctx = logging.WithProject(ctx, scope.Project)
	logger = logging.FromContext(ctx)
	logger.Info().
		Str("project_source", scope.ProjectSource).
		Str("location", scope.Location).
		Str("location_source", scope.LocationSource).
		Msg("Resolved target")

	report.Env = DumpEnv(logging.FromContext(logging.WithStep(ctx, "env")), r.lookup, !r.opts.ShowSecrets, r.opts.EnvVars...)

	r.refresh(logging.WithStep(ctx, "refresh"), cred, report)
	r.listModels(logging.WithStep(ctx, "list"), cred, scope, report)
	r.writeReport(logger, report)

	return report, nil
}

// describe logs the credential kind, the identity behind it and the local
// ADC file.
func (r *Runner) describe(ctx context.Context, logger *zerolog.Logger, cred adc.Credential, report *Report) {
	class := report.Credential
	event := logger.Info()
	if class.ADCType != "" {
		event = event.Str("adc_type", class.ADCType)
	}
	event.Msgf("Using %s", class.Description())

	switch c := cred.(type) {
	case *adc.ServiceAccount:
		report.Identity = c.ClientEmail
	case *adc.AuthorizedUser:
		report.Identity = c.ClientID
	case *adc.ComputeMetadata:
		email, err := c.Email(ctx)
		if err != nil {
			logger.Debug().Err(err).Msg("Could not read service account from metadata server")
		}
		report.Identity = email
	}
	if report.Identity != "" {
		logger.Info().Str("identity", report.Identity).Msg("Credential identity")
	}

	details := r.details()
	if details == nil || details.State != adc.StateConfigured {
		msg := "no ADC file"
		if details != nil {
			msg = details.ErrorMessage
		}
		logger.Debug().Str("reason", msg).Msg("Local ADC file not inspected")
		return
	}

	report.ADC = &ADCSummary{
		Path:           details.Path,
		Type:           details.Type,
		Account:        details.Account,
		Project:        details.Project,
		ProjectSource:  details.ProjectSource,
		UniverseDomain: details.UniverseDomain,
	}
	if !details.LastAuth.IsZero() {
		report.ADC.LastAuth = &utc.Time{Time: details.LastAuth.UTC()}
	}
	logger.Info().
		Str("file", details.Path).
		Str("account", details.Account).
		Str("quota_project", details.Project).
		Str("universe_domain", details.UniverseDomain).
		Msg(adc.FormatBrief(details))
}

// refresh fetches a fresh token. Failures are logged and the run goes on
// with the unrefreshed credential.
func (r *Runner) refresh(ctx context.Context, cred adc.Credential, report *Report) {
	logger := logging.FromContext(ctx)
	err := cred.Refresh(ctx)
	if err == nil {
		report.Refresh.succeed()
		event := logger.Info()
		if token := cred.Token(); token != nil && !token.Expiry.IsZero() {
			event = event.Time("expiry", token.Expiry)
		}
		event.Msg("Credentials refreshed")
		return
	}

	report.Refresh.fail(err)
	if errors.IsRefreshError(err) {
		r.logError(logger.Error(), err).Msg("Failed to refresh credentials")
		return
	}
	r.logError(logger.Error(), err).Msg("Unexpected error while refreshing credentials")
}

// listModels logs every model in catalog order. Any failure, including a
// panic inside the catalog client, is logged and swallowed.
func (r *Runner) listModels(ctx context.Context, cred adc.Credential, scope Scope, report *Report) {
	logger := logging.FromContext(ctx)
	backend := r.opts.Backend
	if backend == "" {
		backend = catalog.BackendVertexAI
	}
	client := r.opts.Client
	if client == "" {
		client = catalog.ClientGenAI
	}
	report.Backend = backend.String()
	report.Client = client.String()

	apiKey := r.opts.APIKey
	if apiKey == "" {
		apiKey = lookupNonEmpty(r.lookup, constants.EnvAPIKey)
	}

	cfg := catalog.Config{
		Project:     scope.Project,
		Location:    scope.Location,
		Backend:     backend,
		Client:      client,
		APIKey:      apiKey,
		Credentials: cred.AuthCredentials(),
		HTTPClient:  r.opts.HTTPClient,
	}

	err := r.collect(ctx, logger, cfg, report)
	if err != nil {
		report.Listing.fail(err)
		r.logError(logger.Error(), err).Msg("Unexpected error while listing models")
		return
	}
	report.Listing.succeed()
	logger.Debug().Int("count", len(report.Models)).Msg("Listing complete")
}

func (r *Runner) collect(ctx context.Context, logger *zerolog.Logger, cfg catalog.Config, report *Report) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("catalog client panicked: %v", recovered)
		}
	}()

	lister, err := r.listers(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := lister.Close(); closeErr != nil {
			logger.Debug().Err(closeErr).Msg("Could not close catalog client")
		}
	}()

	logger.Info().Msg("Available models:")
	for model, iterErr := range lister.List(ctx) {
		if iterErr != nil {
			return iterErr
		}
		report.Models = append(report.Models, model)
		logger.Info().
			Str("display_name", model.DisplayName).
			Str("name", model.Name).
			Str("methods", model.MethodsString()).
			Msg("model")
	}
	return nil
}

func (r *Runner) writeReport(logger *zerolog.Logger, report *Report) {
	if r.opts.ReportPath == "" {
		return
	}
	if err := WriteReport(r.opts.ReportPath, report); err != nil {
		r.logError(logger.Warn(), err).Msg("Could not write report")
		return
	}
	logger.Info().Str("path", r.opts.ReportPath).Msg("Report written")
}

// logError attaches err, and its chain when verbose errors are on.
func (r *Runner) logError(event *zerolog.Event, err error) *zerolog.Event {
	if r.opts.VerboseErrors {
		event = event.Stack()
	}
	return event.Err(err)
}
