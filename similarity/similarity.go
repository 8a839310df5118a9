// Package similarity provides the similarity metrics used to compare
// embedding vectors, dispatched through a closed metric registry.
package similarity

import (
	"fmt"
	"math"
)

// MetricKind identifies a similarity metric.
type MetricKind string

const (
	// MetricCosine is the cosine of the angle between two vectors, in [-1, 1].
	MetricCosine MetricKind = "cosine"

	// MetricDot is the raw dot product. Unbounded; reported as-is.
	MetricDot MetricKind = "dot"

	// MetricEuclidean is 1/(1+d) where d is the Euclidean distance, in (0, 1].
	MetricEuclidean MetricKind = "euclidean"
)

// Metrics lists every supported metric in display order.
var Metrics = []MetricKind{MetricCosine, MetricDot, MetricEuclidean}

// ParseMetric converts a metric name into a MetricKind.
func ParseMetric(name string) (MetricKind, error) {
	switch MetricKind(name) {
	case MetricCosine, MetricDot, MetricEuclidean:
		return MetricKind(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// Result holds the outcome of scoring one vector pair under one metric.
type Result struct {
	Metric MetricKind `json:"metric"`
	Score  float64    `json:"score"`

	// Degenerate is set when the score is defined only by convention,
	// e.g. cosine similarity involving a zero-norm vector.
	Degenerate bool `json:"degenerate,omitempty"`
}

// Func computes a metric over two vectors of equal length.
type Func func(a, b []float64) Result

// registry maps each metric to its scoring function. The metric set is
// closed: adding a metric means adding a constant and an entry here.
var registry = map[MetricKind]Func{
	MetricCosine:    Cosine,
	MetricDot:       DotProduct,
	MetricEuclidean: Euclidean,
}

// Score computes the given metric over a and b.
// It returns ErrDimensionMismatch when the vectors differ in length.
func Score(a, b []float64, metric MetricKind) (Result, error) {
	if len(a) != len(b) {
		return Result{}, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	fn, ok := registry[metric]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return fn(a, b), nil
}

// ScoreAll computes every supported metric from the same vector pair, so
// one comparison yields directly comparable scores.
func ScoreAll(a, b []float64) (map[MetricKind]Result, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	out := make(map[MetricKind]Result, len(registry))
	for kind, fn := range registry {
		out[kind] = fn(a, b)
	}
	return out, nil
}

// Dot returns the dot product of a and b. Callers must ensure equal length.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
