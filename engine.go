// Package simlab compares two pieces of text by embedding them,
// scoring the vectors under several similarity metrics, and deriving
// visualization data from the results and the rolling comparison history.
package simlab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simlab/cache"
	"simlab/history"
	"simlab/keywords"
	"simlab/normalize"
	"simlab/options"
	"simlab/projection"
	"simlab/similarity"
	"simlab/types"
	"simlab/visualization"
)

// DefaultTopContributions is how many per-dimension contribution bars a
// visualization carries.
const DefaultTopContributions = 20

// Engine runs comparisons for one interactive session. Each session owns
// its engine and history; engines are never shared across sessions.
type Engine struct {
	provider  types.EmbeddingProvider
	extractor types.KeywordExtractor
	history   *history.Buffer
	cfg       *options.Config
}

// Comparison is the outcome of one successful compare call.
type Comparison struct {
	Record        types.ComparisonRecord                      `json:"record"`
	Scores        map[similarity.MetricKind]similarity.Result `json:"scores"`
	KeywordScores map[similarity.MetricKind]similarity.Result `json:"keyword_scores,omitempty"`
}

// New creates an engine with functional options.
func New(opts ...options.Option) (*Engine, error) {
	cfg := options.NewConfig()
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := cache.Wrap(cfg.Provider, cfg.Cache)
	return &Engine{
		provider:  provider,
		extractor: cfg.Extractor,
		history:   history.New(cfg.HistoryCapacity),
		cfg:       cfg,
	}, nil
}

// Config returns the active configuration snapshot recorded with each
// comparison.
func (e *Engine) Config() types.SessionConfig {
	return types.SessionConfig{
		Lowercase:        e.cfg.Lowercase,
		StripPunctuation: e.cfg.StripPunctuation,
		Model:            e.provider.Model(),
		Metric:           e.cfg.Metric,
		UseKeywords:      e.cfg.UseKeywords,
		KeywordTopK:      e.cfg.KeywordTopK,
		HistoryCapacity:  e.history.Capacity(),
	}
}

// Compare normalizes and embeds both texts, scores them under every
// metric from the same vector pair, optionally runs the keyword pass,
// and appends a record to the history. A failed embedding or extraction
// fails the whole comparison and leaves the history untouched.
func (e *Engine) Compare(ctx context.Context, textA, textB string) (*Comparison, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return nil, ErrEmptyInput
	}

	flags := e.Config().Flags()
	normA := normalize.Normalize(textA, flags)
	normB := normalize.Normalize(textB, flags)

	vecA, err := e.provider.EmbedText(ctx, normA.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding text A: %w", err)
	}
	vecB, err := e.provider.EmbedText(ctx, normB.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding text B: %w", err)
	}

	scores, err := similarity.ScoreAll(vecA.Values, vecB.Values)
	if err != nil {
		return nil, err
	}

	rec := types.ComparisonRecord{
		Time:        time.Now(),
		TextA:       textA,
		TextB:       textB,
		NormalizedA: normA.Text,
		NormalizedB: normB.Text,
		VectorA:     vecA,
		VectorB:     vecB,
		Scores:      scores,
		Config:      e.Config(),
	}

	if e.cfg.UseKeywords && e.extractor != nil {
		if err := e.keywordPass(ctx, normA.Text, normB.Text, &rec); err != nil {
			return nil, err
		}
	}

	rec = e.history.Append(rec)
	return &Comparison{
		Record:        rec,
		Scores:        rec.Scores,
		KeywordScores: rec.KeywordScores,
	}, nil
}

// keywordPass extracts keywords for both texts and, when both yield at
// least one keyword, embeds the keyword sentences and scores them the
// same way as the full texts. An empty extraction on either side leaves
// the keyword scores unavailable; it is not an error.
func (e *Engine) keywordPass(ctx context.Context, textA, textB string, rec *types.ComparisonRecord) error {
	kwA, err := e.extractor.ExtractKeywords(ctx, textA, e.cfg.KeywordTopK)
	if err != nil {
		return fmt.Errorf("extracting keywords for text A: %w", err)
	}
	kwB, err := e.extractor.ExtractKeywords(ctx, textB, e.cfg.KeywordTopK)
	if err != nil {
		return fmt.Errorf("extracting keywords for text B: %w", err)
	}

	rec.KeywordsA = kwA
	rec.KeywordsB = kwB
	if len(kwA) == 0 || len(kwB) == 0 {
		return nil
	}

	rec.KeywordSentenceA = keywords.Sentence(kwA)
	rec.KeywordSentenceB = keywords.Sentence(kwB)

	vecA, err := e.provider.EmbedText(ctx, rec.KeywordSentenceA)
	if err != nil {
		return fmt.Errorf("embedding keyword sentence A: %w", err)
	}
	vecB, err := e.provider.EmbedText(ctx, rec.KeywordSentenceB)
	if err != nil {
		return fmt.Errorf("embedding keyword sentence B: %w", err)
	}

	scores, err := similarity.ScoreAll(vecA.Values, vecB.Values)
	if err != nil {
		return err
	}
	rec.KeywordVectorA = &vecA
	rec.KeywordVectorB = &vecB
	rec.KeywordScores = scores
	return nil
}

// History returns a most-recent-first read-only view of the comparison
// history.
func (e *Engine) History() []types.ComparisonRecord {
	return e.history.Recent()
}

// Reset clears the comparison history. Only an explicit caller action
// clears history; the engine never resets it on its own.
func (e *Engine) Reset() {
	e.history.Clear()
}

// PointKind tags which vector of a record a projection point represents.
type PointKind string

const (
	PointTextA    PointKind = "text_a"
	PointTextB    PointKind = "text_b"
	PointKeywordA PointKind = "keyword_a"
	PointKeywordB PointKind = "keyword_b"
)

// ProjectionPoint is one history vector placed on the 2-D map.
type ProjectionPoint struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Seq    int       `json:"seq"`
	Kind   PointKind `json:"kind"`
	Latest bool      `json:"latest"`
}

// Projection maps every history vector (full texts plus keyword passes)
// to two dimensions with a PCA fitted fresh on the current history.
// Returns projection.ErrUnavailable until the history holds at least two
// distinct vectors.
func (e *Engine) Projection() ([]ProjectionPoint, error) {
	records := e.history.Recent()

	var rows [][]float64
	var meta []ProjectionPoint
	for i, rec := range records {
		latest := i == 0
		rows = append(rows, rec.VectorA.Values, rec.VectorB.Values)
		meta = append(meta,
			ProjectionPoint{Seq: rec.Seq, Kind: PointTextA, Latest: latest},
			ProjectionPoint{Seq: rec.Seq, Kind: PointTextB, Latest: latest},
		)
		if rec.KeywordVectorA != nil && rec.KeywordVectorB != nil {
			rows = append(rows, rec.KeywordVectorA.Values, rec.KeywordVectorB.Values)
			meta = append(meta,
				ProjectionPoint{Seq: rec.Seq, Kind: PointKeywordA, Latest: latest},
				ProjectionPoint{Seq: rec.Seq, Kind: PointKeywordB, Latest: latest},
			)
		}
	}

	points, err := projection.Project(rows)
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		meta[i].X = p.X
		meta[i].Y = p.Y
	}
	return meta, nil
}

// VisualizationData bundles the renderable geometry for one vector pair.
type VisualizationData struct {
	Score         similarity.Result            `json:"score"`
	Polar         visualization.Polar          `json:"polar"`
	Contributions []visualization.Contribution `json:"contributions,omitempty"`
}

// Visualization derives polar-angle geometry and the top per-dimension
// contributions for a vector pair under the given metric. Vectors from
// different models cannot be visualized together. A zero-norm vector
// yields degenerate polar data and no contributions rather than an error.
func (e *Engine) Visualization(a, b types.EmbeddingVector, metric similarity.MetricKind) (*VisualizationData, error) {
	if a.Model != b.Model {
		return nil, fmt.Errorf("%w: %q vs %q", types.ErrModelMismatch, a.Model, b.Model)
	}
	if a.Dim() != b.Dim() {
		return nil, fmt.Errorf("%w: %d vs %d", similarity.ErrDimensionMismatch, a.Dim(), b.Dim())
	}

	score, err := similarity.Score(a.Values, b.Values, metric)
	if err != nil {
		return nil, err
	}
	polar, err := visualization.BuildPolar(a.Values, b.Values)
	if err != nil {
		return nil, err
	}
	contribs, err := visualization.TopContributions(a.Values, b.Values, DefaultTopContributions)
	if err != nil && !errors.Is(err, similarity.ErrZeroVector) {
		return nil, err
	}

	return &VisualizationData{Score: score, Polar: polar, Contributions: contribs}, nil
}

// Close releases the provider and any cache backend behind it.
func (e *Engine) Close() {
	e.provider.Close()
}
