// Package networking provides the HTTP plumbing used to talk to the
// upstream traffic API: a client builder with sane timeouts and a generic
// JSON fetch helper.
package networking

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout is the timeout for outgoing HTTP requests when the
// builder is not given an explicit one.
const DefaultHTTPTimeout = 30 * time.Second

// HttpClientBuilder provides a fluent interface for building HTTP clients.
type HttpClientBuilder struct {
	clientTimeout         time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	userAgent             string
}

// NewHttpClientBuilder returns a new HttpClientBuilder.
func NewHttpClientBuilder() *HttpClientBuilder {
	return &HttpClientBuilder{
		clientTimeout:         DefaultHTTPTimeout,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
	}
}

// WithTimeout sets the overall request timeout.
func (b *HttpClientBuilder) WithTimeout(timeout time.Duration) *HttpClientBuilder {
	b.clientTimeout = timeout
	return b
}

// WithUserAgent sets the User-Agent header on every request.
func (b *HttpClientBuilder) WithUserAgent(userAgent string) *HttpClientBuilder {
	b.userAgent = userAgent
	return b
}

// Build creates the configured HTTP client.
func (b *HttpClientBuilder) Build() *http.Client {
	transport := &http.Transport{
		TLSHandshakeTimeout:   b.tlsHandshakeTimeout,
		ResponseHeaderTimeout: b.responseHeaderTimeout,
	}

	var clientTransport http.RoundTripper = transport
	if b.userAgent != "" {
		clientTransport = &userAgentTransport{
			transport: transport,
			userAgent: b.userAgent,
		}
	}

	return &http.Client{
		Transport: clientTransport,
		Timeout:   b.clientTimeout,
	}
}

// userAgentTransport stamps a User-Agent header on outgoing requests.
type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

// RoundTrip adds the User-Agent header and forwards the request.
func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	newReq := req.Clone(req.Context())
	newReq.Header.Set("User-Agent", t.userAgent)

	return t.transport.RoundTrip(newReq)
}
