package diag

import (
	"os"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/genaicheck/internal/catalog"
	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
)

// Report summarises one diagnostic run.
type Report struct {
	GeneratedAt utc.Time             `yaml:"generated_at"`
	Credential  Classification       `yaml:"credential"`
	Identity    string               `yaml:"identity,omitempty"`
	ADC         *ADCSummary          `yaml:"adc,omitempty"`
	Scope       *Scope               `yaml:"scope,omitempty"`
	Backend     string               `yaml:"backend,omitempty"`
	Client      string               `yaml:"client,omitempty"`
	Env         []EnvVar             `yaml:"env,omitempty"`
	Refresh     StepResult           `yaml:"refresh"`
	Listing     StepResult           `yaml:"listing"`
	Models      []catalog.Descriptor `yaml:"models,omitempty"`
}

// ADCSummary is the subset of the local ADC file that is safe to report.
type ADCSummary struct {
	Path           string    `yaml:"path"`
	Type           string    `yaml:"type"`
	Account        string    `yaml:"account,omitempty"`
	Project        string    `yaml:"project,omitempty"`
	ProjectSource  string    `yaml:"project_source,omitempty"`
	UniverseDomain string    `yaml:"universe_domain,omitempty"`
	LastAuth       *utc.Time `yaml:"last_auth,omitempty"`
}

// StepResult records whether a best-effort step succeeded.
type StepResult struct {
	Attempted bool   `yaml:"attempted"`
	OK        bool   `yaml:"ok"`
	Error     string `yaml:"error,omitempty"`
}

func (s *StepResult) fail(err error) {
	s.Attempted = true
	s.OK = false
	s.Error = err.Error()
}

func (s *StepResult) succeed() {
	s.Attempted = true
	s.OK = true
	s.Error = ""
}

// WriteReport saves the report as YAML. The file may name accounts, so it
// is written owner-readable only.
func WriteReport(path string, report *Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, constants.SecureFilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the user
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &report, nil
}
