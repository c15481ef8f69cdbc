package autobahn

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRoadsPreservesUpstreamOrder(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handleRoads("A1", "A2", "A3")

	catalog := NewCatalog(NewClient(stub.config()), time.Minute)
	roads, err := catalog.Roads(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A1", "A2", "A3"}, roads)
}

func TestCatalogServesFromCacheWithinTTL(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handleRoads("A1", "A2")

	catalog := NewCatalog(NewClient(stub.config()), time.Minute)

	_, err := catalog.Roads(context.Background())
	require.NoError(t, err)
	_, err = catalog.Roads(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stub.count("/"), "second call within the TTL must be a cache hit")
}

func TestCatalogRefreshesAfterTTL(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handleRoads("A1")

	catalog := NewCatalog(NewClient(stub.config()), 10*time.Millisecond)

	_, err := catalog.Roads(context.Background())
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = catalog.Roads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stub.count("/"))
}

func TestCatalogResolveNormalizesInput(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handleRoads("A1", "A99")

	catalog := NewCatalog(NewClient(stub.config()), time.Minute)
	ctx := context.Background()

	for _, input := range []string{"A1", "a1", " A1 ", "\ta1\n"} {
		canonical, err := catalog.Resolve(ctx, input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "A1", canonical, "input %q", input)
	}
}

func TestCatalogResolveUnknownHighway(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handleRoads("A1", "A2", "A3")

	catalog := NewCatalog(NewClient(stub.config()), time.Minute)

	_, err := catalog.Resolve(context.Background(), "Z99")
	require.Error(t, err)
	assert.True(t, IsUnknownHighway(err), "expected unknown_highway, got %v", err)

	_, err = catalog.Resolve(context.Background(), "A4")
	require.Error(t, err)
	assert.True(t, IsUnknownHighway(err))
}

func TestCatalogServesStaleOnRefreshFailure(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	var mu sync.Mutex
	failing := false
	stub.handle("/", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, map[string]any{"roads": []string{"A1", "A2"}})
	})

	catalog := NewCatalog(NewClient(stub.config()), 10*time.Millisecond)

	roads, err := catalog.Roads(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2"}, roads)

	mu.Lock()
	failing = true
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	// Refresh fails, but the stale catalog is still served.
	roads, err = catalog.Roads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, roads)
}

func TestCatalogSurfacesFailureWithoutPriorSnapshot(t *testing.T) {
	t.Parallel()

	stub := newUpstreamStub(t)
	stub.handle("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	catalog := NewCatalog(NewClient(stub.config()), time.Minute)

	_, err := catalog.Roads(context.Background())
	require.Error(t, err)
	assert.True(t, IsUpstreamUnavailable(err), "expected upstream_unavailable, got %v", err)
}

func TestCatalogSwapIsAtomicUnderConcurrentReaders(t *testing.T) {
	t.Parallel()

	old := []string{"A1", "A2"}
	updated := []string{"A1", "A2", "A3", "A4"}

	stub := newUpstreamStub(t)
	var mu sync.Mutex
	serveUpdated := false
	stub.handle("/", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		roads := old
		if serveUpdated {
			roads = updated
		}
		mu.Unlock()
		writeJSON(w, map[string]any{"roads": roads})
	})

	catalog := NewCatalog(NewClient(stub.config()), 5*time.Millisecond)

	_, err := catalog.Roads(context.Background())
	require.NoError(t, err)

	mu.Lock()
	serveUpdated = true
	mu.Unlock()

	// Hammer the catalog across the TTL boundary. Every reader must see
	// the old or the new catalog wholesale, never a mix.
	var wg sync.WaitGroup
	results := make(chan []string, 256)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 16; j++ {
				roads, err := catalog.Roads(context.Background())
				if err == nil {
					results <- roads
				}
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	close(results)

	for roads := range results {
		if len(roads) == len(old) {
			assert.Equal(t, old, roads)
		} else {
			assert.Equal(t, updated, roads)
		}
	}
}
