package adc

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/agentstation/genaicheck/pkg/constants"
)

// ConfigDir returns the gcloud configuration directory.
// CLOUDSDK_CONFIG wins; otherwise the platform default is used.
// Returns empty string when no home directory can be determined.
func ConfigDir() string {
	if dir := os.Getenv(constants.EnvCloudSDKConfig); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gcloud")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gcloud")
}

// ReadConfig reads a "section/name" property (e.g. "core/project") from the
// active gcloud configuration. Returns empty string if the configuration or
// the property does not exist.
func ReadConfig(property string) string {
	section, name, ok := strings.Cut(property, "/")
	if !ok {
		section, name = "core", property
	}

	dir := ConfigDir()
	if dir == "" {
		return ""
	}

	configPath := filepath.Join(dir, "configurations", "config_"+readActiveConfig(dir))
	data, err := os.ReadFile(configPath) // #nosec G304 -- Reading well-known gcloud config file
	if err != nil {
		return ""
	}

	return parseINIValue(string(data), section, name)
}

// readActiveConfig returns the active gcloud configuration name.
// Returns "default" if active_config file doesn't exist.
func readActiveConfig(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "active_config")) // #nosec G304 -- Reading well-known gcloud config file
	if err != nil {
		return "default"
	}
	if name := strings.TrimSpace(string(data)); name != "" {
		return name
	}
	return "default"
}

// parseINIValue extracts name from the given [section] of INI content.
func parseINIValue(content, section, name string) string {
	var current string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.TrimSpace(strings.Trim(line, "[]"))
			continue
		}

		if current != section {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(key) == name {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
