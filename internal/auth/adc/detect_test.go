package adc

import (
	"context"
	"path/filepath"
	"testing"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
)

type stubTokenProvider struct {
	token *auth.Token
	err   error
}

func (s stubTokenProvider) Token(context.Context) (*auth.Token, error) {
	return s.token, s.err
}

func newTestCredentials(json string, tp auth.TokenProvider) *auth.Credentials {
	var data []byte
	if json != "" {
		data = []byte(json)
	}
	return auth.NewCredentials(&auth.CredentialsOptions{
		TokenProvider: tp,
		JSON:          data,
	})
}

func detectReturning(creds *auth.Credentials, err error) DetectorOption {
	return WithDetectFunc(func(*credentials.DetectOptions) (*auth.Credentials, error) {
		return creds, err
	})
}

func TestResolveShapes(t *testing.T) {
	isolateGCloud(t)
	t.Setenv("GOOGLE_CLOUD_QUOTA_PROJECT", "")

	tests := []struct {
		name        string
		json        string
		wantProject string
		check       func(t *testing.T, cred Credential)
	}{
		{
			name:        "service account",
			json:        `{"type":"service_account","project_id":"sa-project","client_email":"sa@sa-project.iam.gserviceaccount.com"}`,
			wantProject: "sa-project",
			check: func(t *testing.T, cred Credential) {
				sa, ok := cred.(*ServiceAccount)
				require.True(t, ok, "got %T", cred)
				assert.Equal(t, "sa@sa-project.iam.gserviceaccount.com", sa.ClientEmail)
			},
		},
		{
			name:        "authorized user",
			json:        `{"type":"authorized_user","client_id":"cid","quota_project_id":"billing"}`,
			wantProject: "billing",
			check: func(t *testing.T, cred Credential) {
				user, ok := cred.(*AuthorizedUser)
				require.True(t, ok, "got %T", cred)
				assert.Equal(t, "cid", user.ClientID)
				assert.Equal(t, "billing", user.QuotaProjectID)
			},
		},
		{
			name: "metadata server",
			check: func(t *testing.T, cred Credential) {
				_, ok := cred.(*ComputeMetadata)
				assert.True(t, ok, "got %T", cred)
			},
		},
		{
			name: "external account",
			json: `{"type":"external_account"}`,
			check: func(t *testing.T, cred Credential) {
				other, ok := cred.(*Other)
				require.True(t, ok, "got %T", cred)
				assert.Equal(t, TypeExternalAccount, other.CredentialType())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := newTestCredentials(tt.json, stubTokenProvider{token: &auth.Token{Value: "t"}})
			detector := NewDetector(detectReturning(creds, nil))

			cred, project, err := detector.Resolve(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantProject, project)
			assert.Same(t, creds, cred.AuthCredentials())
			tt.check(t, cred)
		})
	}
}

func TestResolveProjectFromGCloudConfig(t *testing.T) {
	dir := isolateGCloud(t)
	t.Setenv("GOOGLE_CLOUD_QUOTA_PROJECT", "")
	writeFile(t, filepath.Join(dir, "configurations", "config_default"), "[core]\nproject = gcloud-project\n")

	creds := newTestCredentials(`{"type":"authorized_user"}`, stubTokenProvider{})
	_, project, err := NewDetector(detectReturning(creds, nil)).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gcloud-project", project)
}

func TestResolveFailure(t *testing.T) {
	detector := NewDetector(detectReturning(nil, errors.New("credentials: could not find default credentials")))

	cred, project, err := detector.Resolve(context.Background())
	require.Error(t, err)
	assert.Nil(t, cred)
	assert.Empty(t, project)
	assert.True(t, errors.IsNoCredentials(err))

	var authErr *errors.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "adc", authErr.Method)
}

func TestResolveRejectsUntypedJSON(t *testing.T) {
	creds := newTestCredentials(`{"project_id":"p"}`, stubTokenProvider{})
	_, _, err := NewDetector(detectReturning(creds, nil)).Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNoCredentials(err))
}

func TestDetectorOptions(t *testing.T) {
	var got *credentials.DetectOptions
	detector := NewDetector(
		WithScopes(constants.ScopeGenerativeLanguage),
		WithCredentialsFile("/tmp/key.json"),
		WithDetectFunc(func(opts *credentials.DetectOptions) (*auth.Credentials, error) {
			got = opts
			return nil, errors.New("stop")
		}),
	)

	_, _, _ = detector.Resolve(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, []string{constants.ScopeGenerativeLanguage}, got.Scopes)
	assert.Equal(t, "/tmp/key.json", got.CredentialsFile)
}

func TestNewDetectorDefaults(t *testing.T) {
	detector := NewDetector()
	assert.Equal(t, []string{constants.ScopeCloudPlatform}, detector.scopes)
	assert.NotNil(t, detector.detect)
}
