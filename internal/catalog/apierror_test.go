package catalog

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agentstation/genaicheck/pkg/errors"
)

func TestWrapAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(error) bool
	}{
		{
			name:       "genai value",
			err:        fmt.Errorf("list: %w", genai.APIError{Code: 429, Message: "quota"}),
			wantStatus: http.StatusTooManyRequests,
			check:      errors.IsRateLimited,
		},
		{
			name:       "googleapi",
			err:        &googleapi.Error{Code: 503, Message: "backend down"},
			wantStatus: http.StatusServiceUnavailable,
			check:      errors.IsProviderUnavailable,
		},
		{
			name:       "grpc status",
			err:        status.Error(codes.PermissionDenied, "no access"),
			wantStatus: http.StatusForbidden,
			check:      errors.IsPermissionDenied,
		},
		{
			name:       "plain error",
			err:        errors.New("connection reset"),
			wantStatus: 0,
			check:      func(error) bool { return true },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapAPIError(BackendVertexAI, tt.err)
			var apiErr *errors.APIError
			require.ErrorAs(t, wrapped, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, "vertex-ai", apiErr.Provider)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestWrapAPIErrorPassthrough(t *testing.T) {
	assert.NoError(t, wrapAPIError(BackendGeminiAPI, nil))

	existing := errors.NewAPIError("gemini-api", 400, "bad")
	assert.Same(t, existing, wrapAPIError(BackendGeminiAPI, existing))
}
