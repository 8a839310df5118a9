// Package cache memoizes embedding provider results so repeated
// comparisons of the same text skip the model call. Backends are
// pluggable: in-memory LRU or Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"simlab/cache/inmemory"
	"simlab/cache/remote"
	"simlab/types"
)

var ErrUnsupportedBackend = errors.New("unsupported cache backend type")

// NewBackend creates an embedding cache backend of the specified type.
func NewBackend(backendType types.CacheBackendType, config types.CacheConfig) (types.EmbeddingCache, error) {
	switch backendType {
	case types.CacheLRU:
		return inmemory.NewLRUBackend(config)
	case types.CacheRedis:
		return remote.NewRedisBackend(config)
	default:
		return nil, ErrUnsupportedBackend
	}
}

// Key derives the cache key for a (model, text) pair.
func Key(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Provider wraps an embedding provider with a cache. Cache failures fall
// through to the underlying provider rather than failing the comparison.
type Provider struct {
	inner   types.EmbeddingProvider
	backend types.EmbeddingCache
}

// Wrap returns a caching provider around inner. A nil backend returns
// inner unchanged.
func Wrap(inner types.EmbeddingProvider, backend types.EmbeddingCache) types.EmbeddingProvider {
	if backend == nil {
		return inner
	}
	return &Provider{inner: inner, backend: backend}
}

// EmbedText returns the cached vector for text when present, otherwise
// embeds through the wrapped provider and stores the result.
func (p *Provider) EmbedText(ctx context.Context, text string) (types.EmbeddingVector, error) {
	key := Key(p.inner.Model(), text)

	if values, found, err := p.backend.Get(ctx, key); err == nil && found {
		return types.EmbeddingVector{Model: p.inner.Model(), Text: text, Values: values}, nil
	}

	vec, err := p.inner.EmbedText(ctx, text)
	if err != nil {
		return types.EmbeddingVector{}, err
	}
	// Best effort: a failed store never fails the embedding.
	_ = p.backend.Set(ctx, key, vec.Values)
	return vec, nil
}

// Model returns the wrapped provider's model identifier.
func (p *Provider) Model() string { return p.inner.Model() }

// Close closes the backend and the wrapped provider.
func (p *Provider) Close() {
	_ = p.backend.Close()
	p.inner.Close()
}

var _ types.EmbeddingProvider = (*Provider)(nil)
