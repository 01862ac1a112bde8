// backend/src/store/store.go
package store

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ResultStore is the keyed store for per-upload processing results. One
// identifier's data is never visible under another identifier, and entries
// expire after the configured TTL so abandoned sessions do not accumulate
// for the lifetime of the process.
type ResultStore interface {
	Put(id string, value any)
	Get(id string) (any, bool)
	Remove(id string)
}

type cacheStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCacheStore returns a ResultStore backed by an in-memory cache with TTL
// eviction.
func NewCacheStore(ttl, cleanupInterval time.Duration) ResultStore {
	return &cacheStore{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Put stores a value and resets its expiry window.
func (s *cacheStore) Put(id string, value any) {
	s.cache.Set(id, value, s.ttl)
}

func (s *cacheStore) Get(id string) (any, bool) {
	return s.cache.Get(id)
}

func (s *cacheStore) Remove(id string) {
	s.cache.Delete(id)
}
