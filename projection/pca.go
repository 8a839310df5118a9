// Package projection reduces history embedding vectors to two dimensions
// via principal component analysis.
//
// The transform is fitted from scratch on every invocation rather than
// updated incrementally. With the history bounded at a few dozen points
// the refit is cheap, and it avoids projection drift as records are
// appended and evicted.
package projection

import (
	"fmt"
	"math"
	"math/rand"

	"simlab/similarity"
)

// Point is a 2-D projection of one input vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	maxIterations = 300
	convergeTol   = 1e-12
	rankEps       = 1e-12
)

// PCA holds a fitted two-component transform.
type PCA struct {
	mean []float64
	c1   []float64
	c2   []float64
}

// Fit computes the top two principal components of rows. Rows are
// L2-normalized before fitting, matching how the vectors are compared.
// It returns ErrUnavailable when fewer than two distinct vectors are
// given and similarity.ErrDimensionMismatch on ragged input.
func Fit(rows [][]float64) (*PCA, error) {
	if len(rows) < 2 {
		return nil, ErrUnavailable
	}
	dim := len(rows[0])
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				similarity.ErrDimensionMismatch, i, len(row), dim)
		}
	}

	normalized := normalizeRows(rows)

	mean := make([]float64, dim)
	for _, row := range normalized {
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= float64(len(normalized))
	}

	centered := make([][]float64, len(normalized))
	var totalVar float64
	for i, row := range normalized {
		c := make([]float64, dim)
		for j, x := range row {
			c[j] = x - mean[j]
			totalVar += c[j] * c[j]
		}
		centered[i] = c
	}
	if totalVar < rankEps {
		// All vectors collapse to one point after normalization.
		return nil, ErrUnavailable
	}

	// Deterministic seed keeps projections reproducible between calls
	// on the same history.
	rng := rand.New(rand.NewSource(0))

	c1, _ := powerIterate(centered, rng)
	fixSign(c1)

	deflate(centered, c1)
	c2, lambda2 := powerIterate(centered, rng)
	if lambda2 < rankEps {
		c2 = orthogonalTo(c1)
	}
	fixSign(c2)

	return &PCA{mean: mean, c1: c1, c2: c2}, nil
}

// Transform projects rows (L2-normalized, then centered with the fitted
// mean) onto the two fitted components, one point per row in order.
func (p *PCA) Transform(rows [][]float64) ([]Point, error) {
	dim := len(p.mean)
	points := make([]Point, len(rows))
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d",
				similarity.ErrDimensionMismatch, i, len(row), dim)
		}
		c := normalizeRow(row)
		for j := range c {
			c[j] -= p.mean[j]
		}
		points[i] = Point{X: similarity.Dot(c, p.c1), Y: similarity.Dot(c, p.c2)}
	}
	return points, nil
}

// Project fits a fresh PCA on rows and returns their projections.
func Project(rows [][]float64) ([]Point, error) {
	pca, err := Fit(rows)
	if err != nil {
		return nil, err
	}
	return pca.Transform(rows)
}

func normalizeRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = normalizeRow(row)
	}
	return out
}

func normalizeRow(row []float64) []float64 {
	norm := similarity.Norm(row) + 1e-12
	out := make([]float64, len(row))
	for j, x := range row {
		out[j] = x / norm
	}
	return out
}

// powerIterate finds the dominant eigenvector of the covariance of the
// centered rows without materializing the covariance matrix, returning
// the unit eigenvector and its eigenvalue estimate.
func powerIterate(centered [][]float64, rng *rand.Rand) ([]float64, float64) {
	dim := len(centered[0])
	n := float64(len(centered))

	v := make([]float64, dim)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	scale(v, 1/similarity.Norm(v))

	var lambda float64
	for iter := 0; iter < maxIterations; iter++ {
		// w = (1/n) * Xᵀ(Xv)
		w := make([]float64, dim)
		for _, row := range centered {
			proj := similarity.Dot(row, v)
			for j, x := range row {
				w[j] += proj * x
			}
		}
		for j := range w {
			w[j] /= n
		}

		lambda = similarity.Norm(w)
		if lambda < rankEps {
			return v, 0
		}
		scale(w, 1/lambda)

		var diff float64
		for j := range w {
			d := w[j] - v[j]
			diff += d * d
		}
		v = w
		if diff < convergeTol {
			break
		}
	}
	return v, lambda
}

// deflate removes each row's component along c so the next power
// iteration converges to the second eigenvector.
func deflate(centered [][]float64, c []float64) {
	for _, row := range centered {
		proj := similarity.Dot(row, c)
		for j := range row {
			row[j] -= proj * c[j]
		}
	}
}

// orthogonalTo returns a deterministic unit vector orthogonal to c, used
// when the data is rank one and the second component is unconstrained.
func orthogonalTo(c []float64) []float64 {
	// Start from the basis vector least aligned with c.
	minIdx := 0
	for i, x := range c {
		if math.Abs(x) < math.Abs(c[minIdx]) {
			minIdx = i
		}
	}
	out := make([]float64, len(c))
	out[minIdx] = 1
	proj := similarity.Dot(out, c)
	for j := range out {
		out[j] -= proj * c[j]
	}
	scale(out, 1/similarity.Norm(out))
	return out
}

// fixSign flips v so its largest-magnitude entry is positive, removing
// the eigenvector sign ambiguity.
func fixSign(v []float64) {
	maxIdx := 0
	for i, x := range v {
		if math.Abs(x) > math.Abs(v[maxIdx]) {
			maxIdx = i
		}
	}
	if v[maxIdx] < 0 {
		scale(v, -1)
	}
}

func scale(v []float64, s float64) {
	for i := range v {
		v[i] *= s
	}
}
