package catalog

import (
	"context"
	"iter"

	"google.golang.org/genai"

	"github.com/agentstation/genaicheck/pkg/errors"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// genaiLister lists models through google.golang.org/genai.
type genaiLister struct {
	client  *genai.Client
	backend Backend
}

func newGenAILister(ctx context.Context, cfg Config) (*genaiLister, error) {
	config := &genai.ClientConfig{
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	switch cfg.Backend {
	case BackendVertexAI:
		if cfg.Project == "" {
			return nil, &errors.ConfigError{
				Component: BackendVertexAI.String(),
				Message:   "project ID not configured - set GOOGLE_CLOUD_PROJECT or pass --project",
			}
		}
		config.Backend = genai.BackendVertexAI
		config.Project = cfg.Project
		config.Location = cfg.Location
		config.Credentials = cfg.Credentials
	case BackendGeminiAPI:
		if cfg.APIKey == "" {
			return nil, &errors.AuthenticationError{
				Provider: BackendGeminiAPI.String(),
				Method:   "api-key",
				Message:  "API key required for the Gemini API - set GOOGLE_API_KEY",
			}
		}
		config.Backend = genai.BackendGeminiAPI
		config.APIKey = cfg.APIKey
	default:
		return nil, errors.NewValidationError("backend", string(cfg.Backend), "unsupported backend")
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: cfg.Backend.String(),
			Message:   "could not create genai client",
			Err:       err,
		}
	}

	logging.FromContext(ctx).Debug().
		Str("backend", cfg.Backend.String()).
		Str("client", ClientGenAI.String()).
		Msg("Catalog client created")

	return &genaiLister{client: client, backend: cfg.Backend}, nil
}

// List yields every base model. Pagination is handled by Models.All.
func (l *genaiLister) List(ctx context.Context) iter.Seq2[Descriptor, error] {
	return func(yield func(Descriptor, error) bool) {
		for model, err := range l.client.Models.All(ctx) {
			if err != nil {
				yield(Descriptor{}, wrapAPIError(l.backend, err))
				return
			}
			if model == nil {
				continue
			}
			if !yield(FromGenAI(model), nil) {
				return
			}
		}
	}
}

// Close is a no-op; the genai client holds no resources.
func (l *genaiLister) Close() error {
	return nil
}

// FromGenAI converts a genai model.
func FromGenAI(m *genai.Model) Descriptor {
	return Descriptor{
		Name:             m.Name,
		DisplayName:      m.DisplayName,
		SupportedActions: m.SupportedActions,
	}
}
