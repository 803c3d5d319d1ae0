// Package adc handles Google Application Default Credentials: locating and
// inspecting the ADC file, reading gcloud configuration, and resolving the
// ambient credential into one of a few concrete shapes that can be refreshed.
package adc

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
)

// ADC file types as written in the "type" field.
const (
	// TypeAuthorizedUser represents user credentials from gcloud auth.
	TypeAuthorizedUser = "authorized_user"
	// TypeServiceAccount represents service account key files.
	TypeServiceAccount = "service_account"
	// TypeExternalAccount represents workload identity federation configs.
	TypeExternalAccount = "external_account"
	// TypeExternalAccountAuthorizedUser represents workforce identity user credentials.
	TypeExternalAccountAuthorizedUser = "external_account_authorized_user"
	// TypeImpersonatedServiceAccount represents gcloud impersonation configs.
	TypeImpersonatedServiceAccount = "impersonated_service_account"
	// TypeGDCHServiceAccount represents Google Distributed Cloud Hosted service accounts.
	TypeGDCHServiceAccount = "gdch_service_account"
)

// File represents an Application Default Credentials JSON file.
// Only identifying fields are decoded; secrets are left alone.
type File struct {
	Type           string `json:"type"`
	QuotaProjectID string `json:"quota_project_id"`
	ProjectID      string `json:"project_id"`
	Account        string `json:"account"`
	ClientID       string `json:"client_id"`
	ClientEmail    string `json:"client_email"`
	UniverseDomain string `json:"universe_domain"`
}

// FindFile locates the ADC file using Google's standard search order.
// Returns empty string if not found.
//
// Search order:
//  1. GOOGLE_APPLICATION_CREDENTIALS environment variable
//  2. application_default_credentials.json in the gcloud config directory
func FindFile() string {
	if path := os.Getenv(constants.EnvApplicationCredentials); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	dir := ConfigDir()
	if dir == "" {
		return ""
	}

	defaultPath := filepath.Join(dir, "application_default_credentials.json")
	if _, err := os.Stat(defaultPath); err == nil {
		return defaultPath
	}

	return ""
}

// ParseFile reads and validates an ADC JSON file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- Reading well-known ADC credential file
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	file, err := ParseJSON(data)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = path
		}
		return nil, err
	}
	return file, nil
}

// ParseJSON decodes ADC JSON. The "type" field is required; any value is
// accepted so that credential kinds this tool does not special-case can
// still be reported.
func ParseJSON(data []byte) (*File, error) {
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.NewParseError("json", "", "invalid JSON", err)
	}
	if file.Type == "" {
		return nil, errors.NewParseError("json", "", "missing 'type' field", nil)
	}
	return &file, nil
}
