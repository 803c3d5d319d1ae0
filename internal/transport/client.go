// Package transport builds the HTTP client used for token and metadata
// server requests. Requests carry a genaicheck User-Agent and are logged at
// debug level without query strings or headers.
package transport

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout is zero: requests are bounded only by their context
// and the client libraries' own deadlines.
var DefaultHTTPTimeout time.Duration

// Option configures a client built by New.
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
	base      http.RoundTripper
}

// WithTimeout overrides DefaultHTTPTimeout. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent added to requests that have none.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithBase replaces http.DefaultTransport as the underlying round tripper.
func WithBase(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// New creates an HTTP client with request logging applied.
func New(opts ...Option) *http.Client {
	o := &options{
		timeout:   DefaultHTTPTimeout,
		userAgent: UserAgent(""),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &http.Client{
		Timeout:   o.timeout,
		Transport: NewRoundTripper(o.base, o.userAgent),
	}
}

// UserAgent returns the User-Agent for a build version.
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "genaicheck/" + version
}
