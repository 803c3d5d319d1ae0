package transport

import (
	"net/http"
	"time"

	"github.com/agentstation/genaicheck/pkg/logging"
)

// RoundTripper sets a User-Agent and logs each request at debug level.
type RoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

// NewRoundTripper wraps base. A nil base uses http.DefaultTransport.
func NewRoundTripper(base http.RoundTripper, userAgent string) *RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RoundTripper{base: base, userAgent: userAgent}
}

// RoundTrip implements http.RoundTripper. The request is cloned before a
// header is added.
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", rt.userAgent)
	}

	start := time.Now()
	resp, err := rt.base.RoundTrip(req)

	event := logging.FromContext(req.Context()).Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Dur("elapsed", time.Since(start))
	if err != nil {
		event.Err(err).Msg("HTTP request failed")
		return nil, err
	}
	event.Int("status", resp.StatusCode).Msg("HTTP request")
	return resp, nil
}
