// Package types holds the shared data model and collaborator interfaces
// of the comparison engine.
package types

import (
	"context"
	"time"

	"simlab/normalize"
	"simlab/similarity"
)

// EmbeddingVector is a fixed-length numeric representation of a text,
// tagged with the model that produced it. Vectors compared in a single
// operation must share the same model and dimensionality.
type EmbeddingVector struct {
	Model  string    `json:"model"`
	Text   string    `json:"text"`
	Values []float64 `json:"values"`
}

// Dim returns the vector's dimensionality.
func (v EmbeddingVector) Dim() int { return len(v.Values) }

// SessionConfig is the active configuration snapshot recorded with each
// comparison.
type SessionConfig struct {
	Lowercase        bool                  `json:"lowercase"`
	StripPunctuation bool                  `json:"strip_punctuation"`
	Model            string                `json:"model"`
	Metric           similarity.MetricKind `json:"metric"`
	UseKeywords      bool                  `json:"use_keywords"`
	KeywordTopK      int                   `json:"keyword_top_k"`
	HistoryCapacity  int                   `json:"history_capacity"`
}

// Flags returns the preprocessing flags portion of the config.
func (c SessionConfig) Flags() normalize.Flags {
	return normalize.Flags{Lowercase: c.Lowercase, StripPunctuation: c.StripPunctuation}
}

// ComparisonRecord is one row of the comparison history. Records are
// created on each successful comparison and never mutated afterwards.
type ComparisonRecord struct {
	Seq  int       `json:"seq"`
	Time time.Time `json:"time"`

	TextA       string `json:"text_a"`
	TextB       string `json:"text_b"`
	NormalizedA string `json:"normalized_a"`
	NormalizedB string `json:"normalized_b"`

	VectorA EmbeddingVector `json:"vector_a"`
	VectorB EmbeddingVector `json:"vector_b"`

	// Keyword-pass fields are nil/empty when keyword mode is off or the
	// extractor returned nothing for either text.
	KeywordsA        []string         `json:"keywords_a,omitempty"`
	KeywordsB        []string         `json:"keywords_b,omitempty"`
	KeywordSentenceA string           `json:"keyword_sentence_a,omitempty"`
	KeywordSentenceB string           `json:"keyword_sentence_b,omitempty"`
	KeywordVectorA   *EmbeddingVector `json:"keyword_vector_a,omitempty"`
	KeywordVectorB   *EmbeddingVector `json:"keyword_vector_b,omitempty"`

	Scores        map[similarity.MetricKind]similarity.Result `json:"scores"`
	KeywordScores map[similarity.MetricKind]similarity.Result `json:"keyword_scores,omitempty"`

	Config SessionConfig `json:"config"`
}

// HasKeywordScores reports whether the keyword pass produced scores.
func (r ComparisonRecord) HasKeywordScores() bool { return len(r.KeywordScores) > 0 }

// EmbeddingProvider maps text to a fixed-length vector using one
// embedding model. Implementations own their timeouts and retries; the
// engine treats a failed call as a failed comparison.
type EmbeddingProvider interface {
	// EmbedText turns a piece of text into its embedding vector.
	EmbedText(ctx context.Context, text string) (EmbeddingVector, error)
	// Model returns the model identifier vectors are tagged with.
	Model() string
	// Close frees any resources held by the provider.
	Close()
}

// KeywordExtractor maps text to a ranked list of keyword strings.
// An empty result is valid and means no keywords could be extracted.
type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string, topK int) ([]string, error)
}

// EmbeddingCache memoizes provider results keyed by (model, text).
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float64, bool, error)
	Set(ctx context.Context, key string, values []float64) error
	Flush(ctx context.Context) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// CacheBackendType selects an embedding cache implementation.
type CacheBackendType string

const (
	CacheLRU   CacheBackendType = "lru"
	CacheRedis CacheBackendType = "redis"
)

// CacheConfig provides configuration options for embedding cache backends.
type CacheConfig struct {
	// For the in-memory backend
	Capacity int

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	Prefix           string
	TTL              time.Duration
}
