package catalog

import (
	"context"
	"iter"

	"cloud.google.com/go/auth/oauth2adapt"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/agentstation/genaicheck/pkg/errors"
	"github.com/agentstation/genaicheck/pkg/logging"
)

// legacyLister lists models through github.com/google/generative-ai-go.
// That client only speaks to the Gemini API.
type legacyLister struct {
	client *genai.Client
}

func newLegacyLister(ctx context.Context, cfg Config) (*legacyLister, error) {
	if cfg.Backend != BackendGeminiAPI {
		return nil, errors.NewValidationError("backend", cfg.Backend.String(),
			"the legacy catalog client only supports gemini-api; pass --vertexai=false or use --catalog-client=genai")
	}

	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.Credentials != nil:
		opts = append(opts, option.WithTokenSource(oauth2adapt.TokenSourceFromTokenProvider(cfg.Credentials)))
	default:
		return nil, &errors.AuthenticationError{
			Provider: BackendGeminiAPI.String(),
			Method:   "api-key",
			Message:  "API key or credentials required for the legacy catalog client",
		}
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: BackendGeminiAPI.String(),
			Message:   "could not create generative-ai-go client",
			Err:       err,
		}
	}

	logging.FromContext(ctx).Debug().
		Str("backend", BackendGeminiAPI.String()).
		Str("client", ClientLegacy.String()).
		Msg("Catalog client created")

	return &legacyLister{client: client}, nil
}

// List walks the ListModels iterator until iterator.Done.
func (l *legacyLister) List(ctx context.Context) iter.Seq2[Descriptor, error] {
	return func(yield func(Descriptor, error) bool) {
		it := l.client.ListModels(ctx)
		for {
			info, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield(Descriptor{}, wrapAPIError(BackendGeminiAPI, err))
				return
			}
			if !yield(FromModelInfo(info), nil) {
				return
			}
		}
	}
}

// Close releases the underlying connections.
func (l *legacyLister) Close() error {
	return l.client.Close()
}

// FromModelInfo converts a generative-ai-go model.
func FromModelInfo(m *genai.ModelInfo) Descriptor {
	return Descriptor{
		Name:                       m.Name,
		DisplayName:                m.DisplayName,
		SupportedGenerationMethods: m.SupportedGenerationMethods,
	}
}
