// Package inmemory provides the in-process embedding cache backend.
package inmemory

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"simlab/types"
)

// DefaultCapacity bounds the embedding cache when no capacity is given.
const DefaultCapacity = 512

// LRUBackend implements the embedding cache with LRU eviction.
type LRUBackend struct {
	cache *lru.Cache[string, []float64]
}

// NewLRUBackend creates a new LRU backend.
func NewLRUBackend(config types.CacheConfig) (*LRUBackend, error) {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, []float64](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUBackend{cache: cache}, nil
}

// Get retrieves a cached vector.
func (b *LRUBackend) Get(ctx context.Context, key string) ([]float64, bool, error) {
	values, found := b.cache.Get(key)
	return values, found, nil
}

// Set stores a vector.
func (b *LRUBackend) Set(ctx context.Context, key string, values []float64) error {
	b.cache.Add(key, values)
	return nil
}

// Flush clears all entries.
func (b *LRUBackend) Flush(ctx context.Context) error {
	b.cache.Purge()
	return nil
}

// Len returns the number of cached vectors.
func (b *LRUBackend) Len(ctx context.Context) (int, error) {
	return b.cache.Len(), nil
}

// Close is a no-op for the in-memory backend.
func (b *LRUBackend) Close() error { return nil }

var _ types.EmbeddingCache = (*LRUBackend)(nil)
