package adc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDetails(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		isolateGCloud(t)

		details := BuildDetails()
		assert.Equal(t, StateMissing, details.State)
		assert.Contains(t, FormatBrief(details), "gcloud auth application-default login")
	})

	t.Run("invalid", func(t *testing.T) {
		dir := isolateGCloud(t)
		writeFile(t, filepath.Join(dir, "application_default_credentials.json"), "not json")

		details := BuildDetails()
		assert.Equal(t, StateInvalid, details.State)
		assert.Contains(t, details.ErrorMessage, "ADC file invalid")
	})

	t.Run("user credentials use gcloud account and project", func(t *testing.T) {
		dir := isolateGCloud(t)
		writeFile(t, filepath.Join(dir, "application_default_credentials.json"),
			`{"type":"authorized_user","client_id":"123.apps.googleusercontent.com"}`)
		writeFile(t, filepath.Join(dir, "configurations", "config_default"),
			"[core]\naccount = dev@example.com\nproject = from-gcloud\n")

		details := BuildDetails()
		require.Equal(t, StateConfigured, details.State)
		assert.Equal(t, "dev@example.com", details.Account)
		assert.Equal(t, "from-gcloud", details.Project)
		assert.Equal(t, "gcloud config", details.ProjectSource)
		assert.Equal(t, "googleapis.com", details.UniverseDomain)
		assert.False(t, details.LastAuth.IsZero())
		assert.Equal(t, "authorized_user, Account: dev@example.com, Project: from-gcloud", FormatBrief(details))
	})

	t.Run("quota project wins over project id", func(t *testing.T) {
		dir := isolateGCloud(t)
		writeFile(t, filepath.Join(dir, "application_default_credentials.json"),
			`{"type":"service_account","client_email":"sa@p.iam.gserviceaccount.com","project_id":"p","quota_project_id":"q","universe_domain":"example.net"}`)

		details := BuildDetails()
		require.Equal(t, StateConfigured, details.State)
		assert.Equal(t, "sa@p.iam.gserviceaccount.com", details.Account)
		assert.Equal(t, "q", details.Project)
		assert.Equal(t, "ADC (quota_project_id)", details.ProjectSource)
		assert.Equal(t, "example.net", details.UniverseDomain)
	})
}

func TestFormatBriefNoProject(t *testing.T) {
	details := &Details{State: StateConfigured, Type: TypeExternalAccount}
	assert.Equal(t, "external_account, No project set", FormatBrief(details))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "configured", StateConfigured.String())
	assert.Equal(t, "missing", StateMissing.String())
	assert.Equal(t, "invalid", StateInvalid.String())
	assert.Equal(t, "unknown", State(42).String())
}
