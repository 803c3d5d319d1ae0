// Package catalog lists the generative models reachable with a credential.
// Two client generations are supported: google.golang.org/genai and the
// older github.com/google/generative-ai-go.
package catalog

import (
	"context"
	"iter"
	"net/http"
	"strings"

	"cloud.google.com/go/auth"

	"github.com/agentstation/genaicheck/pkg/errors"
)

// Backend selects which Google endpoint serves the catalog.
type Backend string

const (
	// BackendVertexAI is the Vertex AI endpoint, scoped by project and location.
	BackendVertexAI Backend = "vertex-ai"
	// BackendGeminiAPI is the Gemini Developer API endpoint.
	BackendGeminiAPI Backend = "gemini-api"
)

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// ParseBackend maps a user supplied name to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertex-ai", "vertexai", "vertex":
		return BackendVertexAI, nil
	case "gemini-api", "gemini", "mldev":
		return BackendGeminiAPI, nil
	default:
		return "", errors.NewValidationError("backend", s, "must be vertex-ai or gemini-api")
	}
}

// BackendFor returns the backend selected by the vertexai toggle.
func BackendFor(vertexAI bool) Backend {
	if vertexAI {
		return BackendVertexAI
	}
	return BackendGeminiAPI
}

// ClientVersion selects the catalog client library.
type ClientVersion string

const (
	// ClientGenAI uses google.golang.org/genai.
	ClientGenAI ClientVersion = "genai"
	// ClientLegacy uses github.com/google/generative-ai-go.
	ClientLegacy ClientVersion = "legacy"
)

// String returns the client name.
func (v ClientVersion) String() string { return string(v) }

// ParseClientVersion maps a user supplied name to a ClientVersion.
// An empty name selects genai.
func ParseClientVersion(s string) (ClientVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "genai":
		return ClientGenAI, nil
	case "legacy", "generative-ai-go":
		return ClientLegacy, nil
	default:
		return "", errors.NewValidationError("catalog-client", s, "must be genai or legacy")
	}
}

// Config holds everything needed to open a catalog.
type Config struct {
	Project  string
	Location string
	Backend  Backend
	Client   ClientVersion

	// APIKey authenticates Gemini API requests. Ignored for Vertex AI.
	APIKey string
	// Credentials authenticates Vertex AI requests, and Gemini API requests
	// when no APIKey is set.
	Credentials *auth.Credentials

	// HTTPClient and BaseURL override the transport and endpoint.
	HTTPClient *http.Client
	BaseURL    string
}

// Lister enumerates models lazily in catalog order.
type Lister interface {
	List(ctx context.Context) iter.Seq2[Descriptor, error]
	Close() error
}

// Factory opens a Lister. New is the production Factory.
type Factory func(ctx context.Context, cfg Config) (Lister, error)

// New opens a catalog with the client library named by cfg.Client.
func New(ctx context.Context, cfg Config) (Lister, error) {
	if cfg.Backend == "" {
		cfg.Backend = BackendVertexAI
	}

	switch cfg.Client {
	case ClientGenAI, "":
		return newGenAILister(ctx, cfg)
	case ClientLegacy:
		return newLegacyLister(ctx, cfg)
	default:
		return nil, errors.NewValidationError("catalog-client", string(cfg.Client), "unsupported catalog client")
	}
}

// Collect drains a Lister, stopping at the first error.
func Collect(ctx context.Context, l Lister) ([]Descriptor, error) {
	var out []Descriptor
	for d, err := range l.List(ctx) {
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, nil
}
