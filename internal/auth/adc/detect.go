package adc

import (
	"context"
	"net/http"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/rs/zerolog"

	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// DetectFunc locates ambient credentials. It matches credentials.DetectDefault.
type DetectFunc func(opts *credentials.DetectOptions) (*auth.Credentials, error)

// Detector resolves the ambient credential of the host.
type Detector struct {
	scopes          []string
	client          *http.Client
	credentialsFile string
	detect          DetectFunc
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithScopes sets the OAuth scopes requested for the credential.
func WithScopes(scopes ...string) DetectorOption {
	return func(d *Detector) {
		d.scopes = scopes
	}
}

// WithHTTPClient sets the transport used for token refresh and the
// metadata server.
func WithHTTPClient(client *http.Client) DetectorOption {
	return func(d *Detector) {
		d.client = client
	}
}

// WithCredentialsFile loads credentials from path instead of the ambient search.
func WithCredentialsFile(path string) DetectorOption {
	return func(d *Detector) {
		d.credentialsFile = path
	}
}

// WithDetectFunc replaces credentials.DetectDefault.
func WithDetectFunc(fn DetectFunc) DetectorOption {
	return func(d *Detector) {
		d.detect = fn
	}
}

// NewDetector creates a Detector requesting the cloud-platform scope.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		scopes: []string{constants.ScopeCloudPlatform},
		detect: credentials.DetectDefault,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolve locates the ambient credential and the project it implies.
// The returned project is empty when nothing could be inferred.
func (d *Detector) Resolve(ctx context.Context) (Credential, string, error) {
	logger := logging.FromContext(ctx)

	creds, err := d.detect(&credentials.DetectOptions{
		Scopes:          d.scopes,
		Client:          d.client,
		CredentialsFile: d.credentialsFile,
	})
	if err != nil {
		return nil, "", errors.NewAuthenticationError("google-cloud", "adc",
			"could not find default credentials", err)
	}

	cred, err := d.wrap(creds)
	if err != nil {
		return nil, "", err
	}

	project := inferProject(ctx, creds, logger)
	return cred, project, nil
}

// wrap picks the concrete credential shape from the credential JSON.
// Credentials without JSON come from the metadata server.
func (d *Detector) wrap(creds *auth.Credentials) (Credential, error) {
	data := creds.JSON()
	if len(data) == 0 {
		return NewComputeMetadata(creds, d.client), nil
	}

	file, err := ParseJSON(data)
	if err != nil {
		return nil, errors.NewAuthenticationError("google-cloud", "adc",
			"credential JSON is not usable", err)
	}

	switch file.Type {
	case TypeServiceAccount:
		return NewServiceAccount(creds, file.ClientEmail, file.ProjectID), nil
	case TypeAuthorizedUser:
		return NewAuthorizedUser(creds, file.ClientID, file.QuotaProjectID), nil
	default:
		return NewOther(creds, file.Type), nil
	}
}

// inferProject returns the project implied by the credential.
//
// Priority order:
//  1. credential project ID
//  2. credential quota project ID
//  3. gcloud config (core/project)
func inferProject(ctx context.Context, creds *auth.Credentials, logger *zerolog.Logger) string {
	if project, err := creds.ProjectID(ctx); err != nil {
		logger.Debug().Err(err).Msg("credential has no project ID")
	} else if project != "" {
		return project
	}

	if project, err := creds.QuotaProjectID(ctx); err != nil {
		logger.Debug().Err(err).Msg("credential has no quota project ID")
	} else if project != "" {
		return project
	}

	return ReadConfig("core/project")
}
