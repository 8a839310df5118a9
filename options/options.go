// Package options provides functional options for configuring comparison
// engines.
package options

import (
	"errors"

	"simlab/cache"
	"simlab/history"
	"simlab/keywords"
	"simlab/providers/openai"
	"simlab/similarity"
	"simlab/types"
)

// Option represents a configuration option for an engine.
type Option func(*Config) error

// Config holds the configuration for building an engine.
type Config struct {
	Provider  types.EmbeddingProvider
	Extractor types.KeywordExtractor
	Cache     types.EmbeddingCache

	Lowercase        bool
	StripPunctuation bool
	Metric           similarity.MetricKind
	UseKeywords      bool
	KeywordTopK      int
	HistoryCapacity  int
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Lowercase:       true,
		Metric:          similarity.MetricCosine,
		KeywordTopK:     8,
		HistoryCapacity: history.DefaultCapacity,
	}
}

// Apply applies all the given options to the config.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == nil {
		return errors.New("embedding provider is required - use WithProvider or WithOpenAIProvider")
	}
	if _, err := similarity.ParseMetric(string(c.Metric)); err != nil {
		return err
	}
	if c.KeywordTopK <= 0 {
		return errors.New("keyword top-k must be positive")
	}
	if c.HistoryCapacity <= 0 {
		return errors.New("history capacity must be positive")
	}
	if c.UseKeywords && c.Extractor == nil {
		return errors.New("keyword mode requires an extractor - use WithKeywordExtractor or WithEmbedRankKeywords")
	}
	return nil
}

// WithProvider sets a pre-configured embedding provider.
func WithProvider(provider types.EmbeddingProvider) Option {
	return func(cfg *Config) error {
		if provider == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.Provider = provider
		return nil
	}
}

// WithOpenAIProvider sets up the OpenAI embedding provider.
func WithOpenAIProvider(apiKey string, model ...string) Option {
	return func(cfg *Config) error {
		config := openai.Config{APIKey: apiKey}
		if len(model) > 0 {
			config.Model = model[0]
		}
		provider, err := openai.NewProvider(config)
		if err != nil {
			return err
		}
		cfg.Provider = provider
		return nil
	}
}

// WithKeywordExtractor enables keyword mode with the given extractor.
func WithKeywordExtractor(extractor types.KeywordExtractor, topK int) Option {
	return func(cfg *Config) error {
		if extractor == nil {
			return errors.New("extractor cannot be nil")
		}
		cfg.Extractor = extractor
		cfg.UseKeywords = true
		if topK > 0 {
			cfg.KeywordTopK = topK
		}
		return nil
	}
}

// WithEmbedRankKeywords enables keyword mode backed by the configured
// embedding provider. Must come after the provider option.
func WithEmbedRankKeywords(topK int) Option {
	return func(cfg *Config) error {
		if cfg.Provider == nil {
			return errors.New("embed-rank keywords require a provider to be configured first")
		}
		cfg.Extractor = keywords.NewEmbedRank(cfg.Provider)
		cfg.UseKeywords = true
		if topK > 0 {
			cfg.KeywordTopK = topK
		}
		return nil
	}
}

// WithMetric selects the similarity metric reported as primary.
func WithMetric(metric similarity.MetricKind) Option {
	return func(cfg *Config) error {
		parsed, err := similarity.ParseMetric(string(metric))
		if err != nil {
			return err
		}
		cfg.Metric = parsed
		return nil
	}
}

// WithPreprocessing sets the text normalization flags.
func WithPreprocessing(lowercase, stripPunctuation bool) Option {
	return func(cfg *Config) error {
		cfg.Lowercase = lowercase
		cfg.StripPunctuation = stripPunctuation
		return nil
	}
}

// WithHistoryCapacity bounds the comparison history.
func WithHistoryCapacity(capacity int) Option {
	return func(cfg *Config) error {
		if capacity <= 0 {
			return errors.New("history capacity must be positive")
		}
		cfg.HistoryCapacity = capacity
		return nil
	}
}

// WithLRUCache memoizes embeddings in an in-memory LRU cache.
func WithLRUCache(capacity int) Option {
	return func(cfg *Config) error {
		backend, err := cache.NewBackend(types.CacheLRU, types.CacheConfig{Capacity: capacity})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithRedisCache memoizes embeddings in Redis.
func WithRedisCache(addr string, db int) Option {
	return func(cfg *Config) error {
		backend, err := cache.NewBackend(types.CacheRedis, types.CacheConfig{
			ConnectionString: addr,
			Database:         db,
		})
		if err != nil {
			return err
		}
		cfg.Cache = backend
		return nil
	}
}

// WithEmbeddingCache sets a pre-configured cache backend.
func WithEmbeddingCache(backend types.EmbeddingCache) Option {
	return func(cfg *Config) error {
		if backend == nil {
			return errors.New("cache backend cannot be nil")
		}
		cfg.Cache = backend
		return nil
	}
}
