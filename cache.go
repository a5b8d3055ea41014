package mealpress

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ContentCache is an in-memory, TTL-bounded view of the published records
// of each kind. Handlers that render public pages read through it instead
// of hitting the filesystem on every request. Mutation endpoints call
// Invalidate; an optional directory watcher catches records edited on
// disk outside the server.
type ContentCache struct {
	mu      sync.RWMutex
	records map[Kind][]ContentRecord
	fetched map[Kind]time.Time
	ttl     time.Duration
	store   ContentStore
	watcher *fsnotify.Watcher
}

// NewContentCache creates a ContentCache backed by the given store.
func NewContentCache(store ContentStore, ttl time.Duration) *ContentCache {
	return &ContentCache{
		records: make(map[Kind][]ContentRecord),
		fetched: make(map[Kind]time.Time),
		ttl:     ttl,
		store:   store,
	}
}

// Watch invalidates the cache whenever a file under one of the given
// directories changes. Call Close to stop the watcher.
func (c *ContentCache) Watch(dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return err
		}
	}
	c.watcher = watcher
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.Invalidate()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the directory watcher, if one was started.
func (c *ContentCache) Close() error {
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.records = make(map[Kind][]ContentRecord)
	c.fetched = make(map[Kind]time.Time)
	c.mu.Unlock()
}

// ensureLoaded returns the published records of a kind, reloading from
// the store when the cached copy is missing or stale. It tries a read
// lock first and only takes the write lock when a reload is needed.
func (c *ContentCache) ensureLoaded(kind Kind) ([]ContentRecord, error) {
	c.mu.RLock()
	if recs, ok := c.records[kind]; ok && time.Since(c.fetched[kind]) < c.ttl {
		c.mu.RUnlock()
		return recs, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if recs, ok := c.records[kind]; ok && time.Since(c.fetched[kind]) < c.ttl {
		return recs, nil
	}
	all, err := c.store.List(kind)
	if err != nil {
		return nil, err
	}
	published := make([]ContentRecord, 0, len(all))
	for _, rec := range all {
		if rec.Status == StatusPublished {
			published = append(published, rec)
		}
	}
	c.records[kind] = published
	c.fetched[kind] = time.Now()
	return published, nil
}

// List returns the published records of a kind, newest first.
func (c *ContentCache) List(kind Kind) ([]ContentRecord, error) {
	return c.ensureLoaded(kind)
}

// Get returns a single published record by slug.
func (c *ContentCache) Get(kind Kind, slug string) (ContentRecord, error) {
	recs, err := c.ensureLoaded(kind)
	if err != nil {
		return ContentRecord{}, err
	}
	for _, rec := range recs {
		if rec.Slug == slug {
			return rec, nil
		}
	}
	return ContentRecord{}, ErrNotFound
}
