package autobahn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/stacklok/autobahn-mcp/pkg/config"
	"github.com/stacklok/autobahn-mcp/pkg/logger"
	"github.com/stacklok/autobahn-mcp/pkg/networking"
	"github.com/stacklok/autobahn-mcp/pkg/telemetry"
	"github.com/stacklok/autobahn-mcp/pkg/versions"
)

// maxAttempts is the total number of attempts per upstream call: the
// initial request plus one automatic retry on timeout or 5xx.
const maxAttempts = 2

// Client issues requests against the upstream traffic API and maps
// transport failures to the typed error taxonomy. Resource paths must be
// pre-validated by the caller; the client never checks highway identifiers.
type Client struct {
	baseURL       string
	httpClient    networking.HTTPClient
	retryInterval time.Duration
}

// NewClient creates a client for the configured upstream API.
func NewClient(cfg *config.Config) *Client {
	httpClient := networking.NewHttpClientBuilder().
		WithTimeout(cfg.RequestTimeout).
		WithUserAgent("autobahn-mcp/" + versions.GetVersionInfo().Version).
		Build()

	return &Client{
		baseURL:       cfg.BaseURL,
		httpClient:    httpClient,
		retryInterval: cfg.RetryInterval,
	}
}

// Roads fetches the full list of highway identifiers from the upstream
// enumeration endpoint, in upstream order.
func (c *Client) Roads(ctx context.Context) ([]string, error) {
	resp, err := fetchResource[roadsResponse](ctx, c, "", "roads")
	if err != nil {
		return nil, err
	}
	return resp.Roads, nil
}

// fetchResource fetches one upstream resource and decodes it into T.
// Timeouts and 5xx responses are retried once with a fixed backoff; 4xx
// and decode failures are permanent. The category label is used for
// metrics and logs only.
func fetchResource[T any](ctx context.Context, c *Client, resourcePath, category string) (T, error) {
	requestURL := c.baseURL + "/" + resourcePath

	// Fixed-interval backoff: multiplier 1 and no jitter turn the
	// exponential policy into the single short constant delay we want
	// between the two attempts.
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = c.retryInterval
	retryBackoff.RandomizationFactor = 0
	retryBackoff.Multiplier = 1.0

	operation := func() (*networking.FetchResult[T], error) {
		result, err := networking.FetchJSON[T](ctx, c.httpClient, requestURL)
		if err != nil {
			mapped := mapUpstreamError(err)
			if !isRetryable(mapped) {
				return nil, backoff.Permanent(mapped)
			}
			return nil, mapped
		}
		return result, nil
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(retryBackoff),
		backoff.WithMaxTries(maxAttempts),
		backoff.WithNotify(func(err error, duration time.Duration) {
			logger.Debugf("Retrying %s after %v: %v", requestURL, duration, err)
		}),
	)
	if err != nil {
		telemetry.RecordUpstreamRequest(category, outcomeLabel(err))
		var zero T
		return zero, normalizeRetryError(err)
	}

	telemetry.RecordUpstreamRequest(category, telemetry.OutcomeSuccess)
	return result.Data, nil
}

// mapUpstreamError translates a raw fetch failure into the typed taxonomy.
func mapUpstreamError(err error) *Error {
	var httpErr *networking.HTTPError
	switch {
	case errors.As(err, &httpErr):
		message := fmt.Sprintf("upstream returned status %d", httpErr.StatusCode)
		if httpErr.StatusCode >= 500 {
			return NewUpstreamUnavailableError(message, err)
		}
		// 4xx is a permanent client-side failure, never retried.
		return NewUpstreamBadResponseError(message, err)
	case errors.Is(err, networking.ErrMalformedResponse):
		return NewUpstreamBadResponseError("upstream payload could not be decoded", err)
	case isTimeout(err):
		return NewUpstreamTimeoutError("upstream call timed out", err)
	default:
		return NewUpstreamUnavailableError("upstream unreachable", err)
	}
}

// isRetryable reports whether the failure warrants the single retry:
// timeouts and unavailability, never bad responses.
func isRetryable(err *Error) bool {
	return err.Type == ErrUpstreamTimeout || err.Type == ErrUpstreamUnavailable
}

// isTimeout reports whether the error is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// normalizeRetryError unwraps failures surfaced by the retry loop itself
// (context cancellation between attempts) into the typed taxonomy.
func normalizeRetryError(err error) error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamTimeoutError("upstream call timed out", err)
	}
	return NewUpstreamUnavailableError("upstream call aborted", err)
}

// outcomeLabel derives the metrics outcome label from a failure.
func outcomeLabel(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type
	}
	return ErrUpstreamUnavailable
}
