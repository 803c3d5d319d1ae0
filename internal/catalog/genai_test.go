package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/genaicheck/pkg/errors"
)

const modelsPage = `{
  "models": [
    {
      "name": "models/gemini-2.0-flash",
      "displayName": "Gemini 2.0 Flash",
      "supportedGenerationMethods": ["generateContent", "countTokens"]
    },
    {
      "name": "models/text-embedding-004",
      "displayName": "Text Embedding 004",
      "supportedGenerationMethods": ["embedContent"]
    }
  ]
}`

func newGeminiServer(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestGenAIListerGeminiAPI(t *testing.T) {
	srv, requests := newGeminiServer(t, http.StatusOK, modelsPage)
	ctx := context.Background()

	lister, err := New(ctx, Config{
		Backend:    BackendGeminiAPI,
		Client:     ClientGenAI,
		APIKey:     "test-key",
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
	})
	require.NoError(t, err)
	defer lister.Close()

	models, err := Collect(ctx, lister)
	require.NoError(t, err)
	require.Len(t, models, 2)

	assert.Equal(t, "models/gemini-2.0-flash", models[0].Name)
	assert.Equal(t, "Gemini 2.0 Flash", models[0].DisplayName)
	assert.Equal(t, "[generateContent countTokens]", models[0].MethodsString())
	assert.Equal(t, "models/text-embedding-004", models[1].Name)

	require.NotEmpty(t, *requests)
	first := (*requests)[0]
	assert.True(t, strings.Contains(first.URL.Path, "models"), first.URL.Path)
	assert.Equal(t, "test-key", first.Header.Get("x-goog-api-key"))
}

func TestGenAIListerStopsEarly(t *testing.T) {
	srv, _ := newGeminiServer(t, http.StatusOK, modelsPage)
	ctx := context.Background()

	lister, err := New(ctx, Config{Backend: BackendGeminiAPI, APIKey: "k", HTTPClient: srv.Client(), BaseURL: srv.URL})
	require.NoError(t, err)

	var seen int
	for _, err := range lister.List(ctx) {
		require.NoError(t, err)
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestGenAIListerAPIError(t *testing.T) {
	srv, _ := newGeminiServer(t, http.StatusForbidden,
		`{"error":{"code":403,"message":"caller does not have permission","status":"PERMISSION_DENIED"}}`)
	ctx := context.Background()

	lister, err := New(ctx, Config{Backend: BackendGeminiAPI, APIKey: "k", HTTPClient: srv.Client(), BaseURL: srv.URL})
	require.NoError(t, err)

	models, err := Collect(ctx, lister)
	require.Error(t, err)
	assert.Empty(t, models)
	assert.True(t, errors.IsPermissionDenied(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, BackendGeminiAPI.String(), apiErr.Provider)
}
