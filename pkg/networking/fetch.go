package networking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultMaxResponseSize is the default maximum response body size (4MB).
	// Warning lists for busy highways run to hundreds of records.
	DefaultMaxResponseSize = 4 * 1024 * 1024

	// DefaultErrorPreviewSize is the maximum size of the error body preview
	// carried in HTTPError.
	DefaultErrorPreviewSize = 1024

	// ContentTypeJSON is the JSON content type.
	ContentTypeJSON = "application/json"
)

// ErrMalformedResponse tags responses whose body could not be decoded as
// the expected JSON (wrong content type, truncated body, or parse failure).
// Callers distinguish it from transport errors with errors.Is.
var ErrMalformedResponse = errors.New("malformed response")

// HTTPClient is the interface used to execute requests. *http.Client
// satisfies it; tests may substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchResult contains the result of a successful JSON fetch.
type FetchResult[T any] struct {
	// Data is the parsed JSON response body.
	Data T

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Headers are the response headers.
	Headers http.Header
}

// FetchOption configures a fetch request.
type FetchOption func(*fetchOptions)

type fetchOptions struct {
	headers         http.Header
	maxResponseSize int64
}

func newFetchOptions() *fetchOptions {
	return &fetchOptions{
		headers:         make(http.Header),
		maxResponseSize: DefaultMaxResponseSize,
	}
}

// WithHeader adds a single header to the request.
func WithHeader(key, value string) FetchOption {
	return func(opts *fetchOptions) {
		opts.headers.Set(key, value)
	}
}

// WithMaxResponseSize sets the maximum response body size.
func WithMaxResponseSize(size int64) FetchOption {
	return func(opts *fetchOptions) {
		opts.maxResponseSize = size
	}
}

// FetchJSON performs an HTTP GET and parses the JSON response body.
// It sets the Accept header to application/json by default. Non-2xx
// responses yield an *HTTPError carrying a body preview; undecodable
// bodies yield an error wrapping ErrMalformedResponse.
func FetchJSON[T any](
	ctx context.Context,
	client HTTPClient,
	requestURL string,
	opts ...FetchOption,
) (*FetchResult[T], error) {
	options := newFetchOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.headers.Get("Accept") == "" {
		options.headers.Set("Accept", ContentTypeJSON)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range options.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read body with size limit
	body, err := io.ReadAll(io.LimitReader(resp.Body, options.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyPreview := string(body)
		if len(bodyPreview) > DefaultErrorPreviewSize {
			bodyPreview = bodyPreview[:DefaultErrorPreviewSize]
		}
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       bodyPreview,
			URL:        requestURL,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), ContentTypeJSON) {
		return nil, fmt.Errorf("%w: unexpected content type %q", ErrMalformedResponse, contentType)
	}

	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &FetchResult[T]{
		Data:       data,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}, nil
}
