package autobahn

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewUpstreamUnavailableError("upstream unreachable", cause)

	assert.Equal(t, "upstream_unavailable: upstream unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewUnknownHighwayError("Z99")
	assert.Equal(t, `unknown_highway: highway "Z99" is not a known autobahn`, bare.Error())
	assert.Nil(t, errors.Unwrap(bare))
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want func(error) bool
	}{
		{NewUnknownHighwayError("Z99"), IsUnknownHighway},
		{NewUpstreamTimeoutError("timed out", nil), IsUpstreamTimeout},
		{NewUpstreamUnavailableError("down", nil), IsUpstreamUnavailable},
		{NewUpstreamBadResponseError("garbage", nil), IsUpstreamBadResponse},
	}

	for _, tt := range tests {
		assert.True(t, tt.want(tt.err), "predicate failed for %v", tt.err)
		// Predicates see through wrapping.
		assert.True(t, tt.want(fmt.Errorf("outer: %w", tt.err)))
	}

	assert.False(t, IsUnknownHighway(NewUpstreamTimeoutError("timed out", nil)))
	assert.False(t, IsUpstreamTimeout(errors.New("plain")))
	assert.False(t, IsUpstreamUnavailable(nil))
}
