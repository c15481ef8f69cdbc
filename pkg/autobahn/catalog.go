package autobahn

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stacklok/autobahn-mcp/pkg/logger"
)

// Catalog caches the list of valid highway identifiers with a TTL.
// Snapshots are replaced wholesale under the lock, so concurrent readers
// see either the old or the new catalog, never a mix. If a refresh fails
// while a previous snapshot exists, the stale snapshot is served and the
// failure is only logged; a rarely-changing list is better stale than
// absent.
type Catalog struct {
	client *Client
	ttl    time.Duration

	mu       sync.RWMutex
	snapshot *catalogSnapshot
}

// catalogSnapshot is an immutable view of the identifier list.
type catalogSnapshot struct {
	roads []string
	// canonical maps the normalized (lowercased) form of each identifier
	// to its upstream-canonical spelling.
	canonical map[string]string
	fetched   time.Time
}

// NewCatalog creates a catalog backed by the given upstream client.
func NewCatalog(client *Client, ttl time.Duration) *Catalog {
	return &Catalog{
		client: client,
		ttl:    ttl,
	}
}

// Roads returns the highway identifiers in upstream order, refreshing the
// snapshot when it is missing or older than the TTL.
func (c *Catalog) Roads(ctx context.Context) ([]string, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.roads, nil
}

// Resolve normalizes the given identifier (trimming whitespace, matching
// case-insensitively) and returns its upstream-canonical form. Unknown
// identifiers fail with an unknown_highway error without any network call
// beyond the catalog refresh itself.
func (c *Catalog) Resolve(ctx context.Context, id string) (string, error) {
	snap, err := c.current(ctx)
	if err != nil {
		return "", err
	}

	normalized := strings.ToLower(strings.TrimSpace(id))
	canonical, ok := snap.canonical[normalized]
	if !ok {
		return "", NewUnknownHighwayError(strings.TrimSpace(id))
	}
	return canonical, nil
}

// current returns a valid snapshot, refreshing if needed.
func (c *Catalog) current(ctx context.Context) (*catalogSnapshot, error) {
	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()

	if snap != nil && time.Since(snap.fetched) < c.ttl {
		return snap, nil
	}
	return c.refresh(ctx)
}

// refresh fetches the identifier list and swaps in a new snapshot.
// On failure with a prior snapshot, the stale snapshot is returned.
func (c *Catalog) refresh(ctx context.Context) (*catalogSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if c.snapshot != nil && time.Since(c.snapshot.fetched) < c.ttl {
		return c.snapshot, nil
	}

	roads, err := c.client.Roads(ctx)
	if err != nil {
		if c.snapshot != nil {
			logger.Warnf("Highway catalog refresh failed, serving stale catalog: %v", err)
			return c.snapshot, nil
		}
		return nil, err
	}

	canonical := make(map[string]string, len(roads))
	for _, road := range roads {
		canonical[strings.ToLower(road)] = road
	}

	c.snapshot = &catalogSnapshot{
		roads:     roads,
		canonical: canonical,
		fetched:   time.Now(),
	}
	logger.Debugf("Highway catalog refreshed: %d identifiers", len(roads))

	return c.snapshot, nil
}
