package similarity

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func TestCosine(t *testing.T) {
	t.Run("orthogonal vectors", func(t *testing.T) {
		res := Cosine([]float64{1, 0}, []float64{0, 1})
		if res.Score != 0 {
			t.Errorf("expected 0, got %f", res.Score)
		}
		if res.Degenerate {
			t.Error("orthogonal vectors should not be degenerate")
		}
	})

	t.Run("identical vectors", func(t *testing.T) {
		v := []float64{0.3, -0.5, 0.8}
		res := Cosine(v, v)
		if math.Abs(res.Score-1) > tolerance {
			t.Errorf("expected 1, got %f", res.Score)
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		a := []float64{1, 2, 3}
		b := []float64{-2, 0.5, 4}
		if Cosine(a, b).Score != Cosine(b, a).Score {
			t.Error("cosine is not symmetric")
		}
	})

	t.Run("opposite vectors", func(t *testing.T) {
		res := Cosine([]float64{1, 1}, []float64{-1, -1})
		if math.Abs(res.Score+1) > tolerance {
			t.Errorf("expected -1, got %f", res.Score)
		}
	})

	t.Run("zero vector is degenerate", func(t *testing.T) {
		res := Cosine([]float64{0, 0}, []float64{1, 2})
		if !res.Degenerate {
			t.Error("expected degenerate result")
		}
		if res.Score != 0 {
			t.Errorf("expected conventional 0 score, got %f", res.Score)
		}
	})
}

func TestEuclidean(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float64{1, 2, 3}
		if got := Euclidean(v, v).Score; got != 1 {
			t.Errorf("expected 1, got %f", got)
		}
	})

	t.Run("orthogonal unit vectors", func(t *testing.T) {
		got := Euclidean([]float64{1, 0}, []float64{0, 1}).Score
		want := 1 / (1 + math.Sqrt2)
		if math.Abs(got-want) > tolerance {
			t.Errorf("expected %f, got %f", want, got)
		}
	})

	t.Run("range is (0, 1]", func(t *testing.T) {
		pairs := [][2][]float64{
			{{0, 0}, {0, 0}},
			{{1e6, -1e6}, {-1e6, 1e6}},
			{{0.1, 0.2}, {0.3, 0.4}},
		}
		for _, p := range pairs {
			got := Euclidean(p[0], p[1]).Score
			if got <= 0 || got > 1 {
				t.Errorf("score %f out of (0, 1] for %v", got, p)
			}
		}
	})
}

func TestDotProduct(t *testing.T) {
	res := DotProduct([]float64{1, 2, 3}, []float64{4, 5, 6})
	if res.Score != 32 {
		t.Errorf("expected 32, got %f", res.Score)
	}
	if got := DotProduct([]float64{1, 0}, []float64{0, 1}).Score; got != 0 {
		t.Errorf("expected 0, got %f", got)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float64
		metric  MetricKind
		want    float64
		wantErr error
	}{
		{name: "cosine", a: []float64{1, 0}, b: []float64{1, 0}, metric: MetricCosine, want: 1},
		{name: "dot", a: []float64{2, 0}, b: []float64{3, 0}, metric: MetricDot, want: 6},
		{name: "euclidean identical", a: []float64{1, 1}, b: []float64{1, 1}, metric: MetricEuclidean, want: 1},
		{name: "dimension mismatch", a: []float64{1, 0}, b: []float64{1}, metric: MetricCosine, wantErr: ErrDimensionMismatch},
		{name: "unknown metric", a: []float64{1}, b: []float64{1}, metric: MetricKind("manhattan"), wantErr: ErrUnknownMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(tt.a, tt.b, tt.metric)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(res.Score-tt.want) > tolerance {
				t.Errorf("expected %f, got %f", tt.want, res.Score)
			}
			if res.Metric != tt.metric {
				t.Errorf("expected metric %s, got %s", tt.metric, res.Metric)
			}
		})
	}
}

func TestScoreAll(t *testing.T) {
	t.Run("all metrics from one pair", func(t *testing.T) {
		a := []float64{1, 0}
		b := []float64{0, 1}
		scores, err := ScoreAll(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scores) != len(Metrics) {
			t.Fatalf("expected %d scores, got %d", len(Metrics), len(scores))
		}
		if scores[MetricCosine].Score != 0 {
			t.Errorf("cosine: expected 0, got %f", scores[MetricCosine].Score)
		}
		if scores[MetricDot].Score != 0 {
			t.Errorf("dot: expected 0, got %f", scores[MetricDot].Score)
		}
		want := 1 / (1 + math.Sqrt2)
		if math.Abs(scores[MetricEuclidean].Score-want) > tolerance {
			t.Errorf("euclidean: expected %f, got %f", want, scores[MetricEuclidean].Score)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := ScoreAll([]float64{1, 2}, []float64{1, 2, 3})
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("expected ErrDimensionMismatch, got %v", err)
		}
	})
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		got, err := ParseMetric(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMetric(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseMetric("chebyshev"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}
