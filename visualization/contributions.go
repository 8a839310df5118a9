package visualization

import (
	"fmt"
	"sort"

	"simlab/similarity"
)

// Contribution is one dimension's signed share of the cosine score.
type Contribution struct {
	Dimension int     `json:"dimension"`
	Value     float64 `json:"value"`
	Rank      int     `json:"rank"`
}

// TopContributions returns the n dimensions contributing most to the
// cosine similarity of a and b, ranked by absolute value descending with
// ties broken by lower dimension index. Each value is a[i]*b[i] divided
// by the product of norms, so the values over all dimensions sum to the
// cosine score. Zero-norm input returns similarity.ErrZeroVector since
// no normalized contribution exists.
func TopContributions(a, b []float64, n int) ([]Contribution, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", similarity.ErrDimensionMismatch, len(a), len(b))
	}
	normA := similarity.Norm(a)
	normB := similarity.Norm(b)
	if normA == 0 || normB == 0 {
		return nil, similarity.ErrZeroVector
	}
	if n <= 0 {
		return nil, nil
	}

	scale := normA * normB
	all := make([]Contribution, len(a))
	for i := range a {
		all[i] = Contribution{Dimension: i, Value: a[i] * b[i] / scale}
	}

	// Stable sort over ascending-index input keeps the lower index first
	// on equal magnitude.
	sort.SliceStable(all, func(i, j int) bool {
		return abs(all[i].Value) > abs(all[j].Value)
	})

	if n > len(all) {
		n = len(all)
	}
	top := all[:n]
	for i := range top {
		top[i].Rank = i + 1
	}
	return top, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
