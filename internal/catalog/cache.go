package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Fetcher retrieves the full catalog from the content API.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Product, error)
}

// SnapshotStore persists the last good snapshot across restarts. Best effort:
// load/save failures are logged and otherwise ignored.
type SnapshotStore interface {
	LoadSnapshot() ([]Product, error)
	SaveSnapshot(products []Product) error
}

// Cache holds the current catalog snapshot. The snapshot is immutable after
// construction and replaced wholesale on refresh, so readers never observe a
// partial update.
type Cache struct {
	fetch Fetcher
	store SnapshotStore // may be nil
	log   *zap.Logger

	mu       sync.RWMutex
	products []Product

	done     chan struct{}
	doneOnce sync.Once
}

func NewCache(fetch Fetcher, store SnapshotStore, log *zap.Logger) *Cache {
	return &Cache{
		fetch: fetch,
		store: store,
		log:   log,
		done:  make(chan struct{}),
	}
}

// WarmStart seeds the cache from the persisted snapshot, if any, so matching
// has product context before the startup refresh completes.
func (c *Cache) WarmStart() {
	if c.store == nil {
		return
	}
	products, err := c.store.LoadSnapshot()
	if err != nil {
		c.log.Warn("catalog: loading persisted snapshot failed", zap.Error(err))
		return
	}
	if len(products) == 0 {
		return
	}
	c.replace(products)
	c.log.Info("catalog: warm start from persisted snapshot", zap.Int("products", len(products)))
}

// Refresh fetches the catalog and replaces the snapshot. On failure the
// previous snapshot is left untouched; there is no retry. Completion, success
// or not, is observable via Done.
func (c *Cache) Refresh(ctx context.Context) error {
	defer c.doneOnce.Do(func() { close(c.done) })

	products, err := c.fetch.FetchAll(ctx)
	if err != nil {
		c.log.Error("catalog: refresh failed, keeping previous snapshot", zap.Error(err))
		return err
	}

	c.replace(products)
	c.log.Info("catalog: refreshed", zap.Int("products", len(products)))

	if c.store != nil {
		if err := c.store.SaveSnapshot(products); err != nil {
			c.log.Warn("catalog: persisting snapshot failed", zap.Error(err))
		}
	}
	return nil
}

// Done is closed once the startup refresh has finished, successfully or not.
func (c *Cache) Done() <-chan struct{} {
	return c.done
}

// Snapshot returns the current catalog. The returned slice must not be
// mutated; it is shared with concurrent readers.
func (c *Cache) Snapshot() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Cache) replace(products []Product) {
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
}
