package adc

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agentstation/genaicheck/pkg/constants"
)

// State represents the local ADC file state.
type State int

const (
	// StateConfigured means an ADC file was found and parsed.
	StateConfigured State = iota
	// StateMissing means no ADC file exists.
	StateMissing
	// StateInvalid means an ADC file exists but cannot be parsed.
	StateInvalid
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Details describes the ADC file on this host.
type Details struct {
	State          State
	Type           string    // ADC "type" field
	Account        string    // email, client email or client ID
	Project        string    // project ID
	ProjectSource  string    // "ADC (quota_project_id)" | "ADC (project_id)" | "gcloud config" | "not set"
	UniverseDomain string    // usually googleapis.com
	Path           string    // path to the ADC file
	LastAuth       time.Time // file modification time
	ErrorMessage   string    // only for invalid/missing states
}

// BuildDetails inspects the local ADC file. No network calls are made, so
// metadata-server credentials report StateMissing.
func BuildDetails() *Details {
	path := FindFile()
	if path == "" {
		return &Details{
			State:        StateMissing,
			ErrorMessage: "No ADC file found. Run: gcloud auth application-default login",
		}
	}

	file, err := ParseFile(path)
	if err != nil {
		return &Details{
			State:        StateInvalid,
			Path:         path,
			ErrorMessage: fmt.Sprintf("ADC file invalid: %v", err),
		}
	}

	details := &Details{
		State:          StateConfigured,
		Type:           file.Type,
		Account:        accountIdentifier(file),
		UniverseDomain: universeDomain(file.UniverseDomain),
		Path:           path,
		LastAuth:       fileModTime(path),
	}
	details.Project, details.ProjectSource = resolveProject(file)

	return details
}

// accountIdentifier prefers the account email, then the service account
// email, then the gcloud account for user credentials, then the client ID.
func accountIdentifier(file *File) string {
	switch {
	case file.Account != "":
		return file.Account
	case file.ClientEmail != "":
		return file.ClientEmail
	}
	if file.Type == TypeAuthorizedUser {
		if account := ReadConfig("core/account"); account != "" {
			return account
		}
	}
	if file.ClientID != "" {
		return "(client ID: " + file.ClientID + ")"
	}
	return ""
}

func universeDomain(domain string) string {
	if domain == "" {
		return constants.DefaultUniverseDomain
	}
	return domain
}

func fileModTime(path string) time.Time {
	if stat, err := os.Stat(path); err == nil {
		return stat.ModTime()
	}
	return time.Time{}
}

// resolveProject determines the project recorded for this ADC file.
//
// Priority order:
//  1. ADC quota_project_id
//  2. ADC project_id
//  3. gcloud config (core/project)
func resolveProject(file *File) (project, source string) {
	if file.QuotaProjectID != "" {
		return file.QuotaProjectID, "ADC (quota_project_id)"
	}
	if file.ProjectID != "" {
		return file.ProjectID, "ADC (project_id)"
	}
	if configProject := ReadConfig("core/project"); configProject != "" {
		return configProject, "gcloud config"
	}
	return "", "not set"
}

// FormatBrief creates a one-line summary of the ADC file.
//
// Example: "authorized_user, Account: dev@example.com, Project: my-project".
func FormatBrief(details *Details) string {
	if details.State != StateConfigured {
		return details.ErrorMessage
	}

	parts := []string{details.Type}
	if details.Account != "" {
		parts = append(parts, "Account: "+details.Account)
	}
	if details.Project != "" {
		parts = append(parts, "Project: "+details.Project)
	} else {
		parts = append(parts, "No project set")
	}
	return strings.Join(parts, ", ")
}
