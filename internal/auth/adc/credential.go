package adc

import (
	"context"
	"net/http"
	"sync"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/compute/metadata"

	"github.com/agentstation/genaicheck/pkg/errors"
)

// Credential is an ambient credential resolved from the host environment.
// Refresh fetches a token and caches it on the credential.
type Credential interface {
	Refresh(ctx context.Context) error
	Token() *auth.Token
	AuthCredentials() *auth.Credentials
}

// base carries the fields every concrete credential shares.
type base struct {
	creds *auth.Credentials
	kind  string

	mu    sync.Mutex
	token *auth.Token
}

// Refresh obtains a token from the underlying token provider.
func (b *base) Refresh(ctx context.Context) error {
	if b.creds == nil {
		return errors.NewRefreshError(b.kind, errors.New("no token provider"))
	}

	token, err := b.creds.Token(ctx)
	if err != nil {
		return errors.NewRefreshError(b.kind, err)
	}

	b.mu.Lock()
	b.token = token
	b.mu.Unlock()
	return nil
}

// Token returns the token from the last successful refresh, or nil.
func (b *base) Token() *auth.Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.token
}

// AuthCredentials returns the credentials detected by the auth library.
func (b *base) AuthCredentials() *auth.Credentials {
	return b.creds
}

// ServiceAccount is a credential loaded from a service account key file.
type ServiceAccount struct {
	base
	ClientEmail string
	ProjectID   string
}

// AuthorizedUser is an OAuth user credential written by gcloud.
type AuthorizedUser struct {
	base
	ClientID       string
	QuotaProjectID string
}

// ComputeMetadata is a credential served by the GCE metadata server.
type ComputeMetadata struct {
	base
	client *metadata.Client
}

// Email returns the default service account of the host as reported by the
// metadata server.
func (c *ComputeMetadata) Email(ctx context.Context) (string, error) {
	email, err := c.client.EmailWithContext(ctx, "default")
	if err != nil {
		return "", errors.WrapIO("read", "metadata/instance/service-accounts/default/email", err)
	}
	return email, nil
}

// Other is any credential whose ADC type is not special-cased, for example
// external_account or impersonated_service_account.
type Other struct {
	base
	Type string
}

// CredentialType returns the ADC "type" field of the credential.
func (o *Other) CredentialType() string {
	return o.Type
}

// NewServiceAccount wraps creds as a service account credential.
func NewServiceAccount(creds *auth.Credentials, clientEmail, projectID string) *ServiceAccount {
	return &ServiceAccount{
		base:        base{creds: creds, kind: TypeServiceAccount},
		ClientEmail: clientEmail,
		ProjectID:   projectID,
	}
}

// NewAuthorizedUser wraps creds as a gcloud user credential.
func NewAuthorizedUser(creds *auth.Credentials, clientID, quotaProjectID string) *AuthorizedUser {
	return &AuthorizedUser{
		base:           base{creds: creds, kind: TypeAuthorizedUser},
		ClientID:       clientID,
		QuotaProjectID: quotaProjectID,
	}
}

// NewComputeMetadata wraps creds as a metadata-server credential. A nil
// client uses http.DefaultClient.
func NewComputeMetadata(creds *auth.Credentials, client *http.Client) *ComputeMetadata {
	return &ComputeMetadata{
		base:   base{creds: creds, kind: "compute_metadata"},
		client: metadata.NewClient(client),
	}
}

// NewOther wraps creds of the given ADC type.
func NewOther(creds *auth.Credentials, credType string) *Other {
	return &Other{
		base: base{creds: creds, kind: credType},
		Type: credType,
	}
}
