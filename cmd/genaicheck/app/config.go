package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
)

// Config holds the application configuration loaded from flags, the
// environment, .env files and the config file.
type Config struct {
	// Config file
	ConfigFile string

	// Target
	Project  string
	Location string
	VertexAI bool

	// Catalog
	CatalogClient   string
	APIKey          string
	CredentialsFile string

	// Diagnostic output
	VerboseErrors bool
	ShowSecrets   bool
	ReportPath    string
	EnvVars       []string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
	NoColor   bool
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (bound in setupCommand)
//  2. GENAICHECK_* environment variables
//  3. .env and .env.local files
//  4. Config file (~/.genaicheck.yaml)
//  5. Defaults
func LoadConfig() (*Config, *viper.Viper, error) {
	// Load .env files first so they are visible to the env bindings
	loadEnvFiles()

	v := newViper()
	if err := readConfigFile(v, v.GetString("config")); err != nil {
		return nil, nil, err
	}
	return configFromViper(v), v, nil
}

// newViper creates a viper instance with env bindings and defaults.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("vertexai", ParseVertexAI(os.LookupEnv(constants.EnvUseVertexAI)))
	v.SetDefault("catalog-client", "genai")
	v.SetDefault("env-vars", constants.DefaultEnvVars)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "auto")
	v.SetDefault("log-output", "stderr")

	bindEnv(v)
	return v
}

// bindEnv binds the unprefixed variables that share a config key.
// The prefixed name is listed first so it wins.
func bindEnv(v *viper.Viper) {
	bindings := map[string][]string{
		"api-key":    {"GENAICHECK_API_KEY", constants.EnvAPIKey},
		"log-level":  {"GENAICHECK_LOG_LEVEL", "LOG_LEVEL"},
		"log-format": {"GENAICHECK_LOG_FORMAT", "LOG_FORMAT"},
		"log-output": {"GENAICHECK_LOG_OUTPUT", "LOG_OUTPUT"},
	}
	for key, envs := range bindings {
		// BindEnv only fails when called without a key
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// readConfigFile reads the named config file, or searches $HOME and the
// working directory for .genaicheck.yaml. A missing file is only an error
// when it was named explicitly.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if path == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
		return nil
	}
	return &errors.ConfigError{
		Component: "config",
		Message:   "cannot read " + filepath.Clean(firstNonEmpty(path, v.ConfigFileUsed())),
		Err:       err,
	}
}

// configFromViper builds a Config from the merged viper state.
func configFromViper(v *viper.Viper) *Config {
	return &Config{
		ConfigFile: v.ConfigFileUsed(),

		Project:  v.GetString("project"),
		Location: v.GetString("location"),
		VertexAI: v.GetBool("vertexai"),

		CatalogClient:   v.GetString("catalog-client"),
		APIKey:          v.GetString("api-key"),
		CredentialsFile: v.GetString("credentials-file"),

		VerboseErrors: v.GetBool("verbose-errors"),
		ShowSecrets:   v.GetBool("show-secrets"),
		ReportPath:    v.GetString("report"),
		EnvVars:       v.GetStringSlice("env-vars"),

		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		LogOutput: v.GetString("log-output"),
		NoColor:   v.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
	}
}

// ParseVertexAI interprets GOOGLE_GENAI_USE_VERTEXAI. Unset means true;
// "1", "true" and "yes" in any case mean true; anything else means false.
func ParseVertexAI(value string, set bool) bool {
	if !set {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already in the environment are never overwritten.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
