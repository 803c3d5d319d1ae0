package catalog

import (
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agentstation/genaicheck/pkg/errors"
)

// grpcToHTTP maps the gRPC codes a catalog call can plausibly return.
var grpcToHTTP = map[codes.Code]int{
	codes.InvalidArgument:   http.StatusBadRequest,
	codes.Unauthenticated:   http.StatusUnauthorized,
	codes.PermissionDenied:  http.StatusForbidden,
	codes.NotFound:          http.StatusNotFound,
	codes.ResourceExhausted: http.StatusTooManyRequests,
	codes.Internal:          http.StatusInternalServerError,
	codes.Unavailable:       http.StatusServiceUnavailable,
	codes.DeadlineExceeded:  http.StatusGatewayTimeout,
}

// wrapAPIError converts a client error into an *errors.APIError carrying
// the HTTP status when one can be recovered.
func wrapAPIError(backend Backend, err error) error {
	if err == nil {
		return nil
	}

	var already *errors.APIError
	if errors.As(err, &already) {
		return err
	}

	apiErr := &errors.APIError{
		Provider: backend.String(),
		Endpoint: "models",
		Message:  err.Error(),
		Err:      err,
	}

	var genaiErr genai.APIError
	var genaiErrPtr *genai.APIError
	var googleErr *googleapi.Error

	switch {
	case errors.As(err, &genaiErr):
		apiErr.StatusCode = genaiErr.Code
		apiErr.Message = genaiErr.Message
	case errors.As(err, &genaiErrPtr):
		apiErr.StatusCode = genaiErrPtr.Code
		apiErr.Message = genaiErrPtr.Message
	case errors.As(err, &googleErr):
		apiErr.StatusCode = googleErr.Code
		if googleErr.Message != "" {
			apiErr.Message = googleErr.Message
		}
	default:
		if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
			apiErr.StatusCode = grpcToHTTP[st.Code()]
			apiErr.Message = st.Message()
		}
	}

	return apiErr
}
