// Package constants provides shared constants used throughout the genaicheck codebase.
// This includes environment variable names, OAuth scopes, defaults and file
// permissions that should be consistent across the application.
package constants

// Environment variables read by the diagnostic.
const (
	// EnvUseVertexAI selects the Vertex AI backend when truthy.
	EnvUseVertexAI = "GOOGLE_GENAI_USE_VERTEXAI"

	// EnvCloudProject is the target Google Cloud project.
	EnvCloudProject = "GOOGLE_CLOUD_PROJECT"

	// EnvCloudLocation is the target Vertex AI region.
	EnvCloudLocation = "GOOGLE_CLOUD_LOCATION"

	// EnvApplicationCredentials points at an ADC JSON file.
	EnvApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

	// EnvAPIKey is the Gemini API key.
	EnvAPIKey = "GOOGLE_API_KEY"

	// EnvCloudSDKConfig overrides the gcloud configuration directory.
	EnvCloudSDKConfig = "CLOUDSDK_CONFIG"

	// EnvPrefix is the prefix for genaicheck's own configuration overrides.
	EnvPrefix = "GENAICHECK"
)

// DefaultEnvVars is the fixed set of variables dumped by the diagnostic.
var DefaultEnvVars = []string{
	EnvUseVertexAI,
	EnvCloudProject,
	EnvCloudLocation,
	EnvApplicationCredentials,
	EnvAPIKey,
}

// OAuth scopes requested for ambient credentials.
const (
	// ScopeCloudPlatform grants access to Vertex AI.
	ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"

	// ScopeGenerativeLanguage grants access to the Gemini API.
	ScopeGenerativeLanguage = "https://www.googleapis.com/auth/generative-language"
)

// Default values
const (
	// DefaultLocation is the region used when neither a flag nor the environment sets one.
	DefaultLocation = "us-west2"

	// DefaultUniverseDomain is the Google Cloud universe domain when an ADC file does not name one.
	DefaultUniverseDomain = "googleapis.com"

	// DefaultConfigName is the base name of the config file searched in $HOME and the working directory.
	DefaultConfigName = ".genaicheck"

	// UnknownMethods is the placeholder for a model without a capability list.
	UnknownMethods = "?"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like reports with account data (rw-------)
	SecureFilePermissions = 0600
)
