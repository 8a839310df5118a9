package projection

import (
	"errors"
	"math"
	"testing"

	"simlab/similarity"
)

const tolerance = 1e-6

func TestProjectUnavailable(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if _, err := Project(nil); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("single vector", func(t *testing.T) {
		if _, err := Project([][]float64{{1, 0}}); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("identical vectors collapse", func(t *testing.T) {
		rows := [][]float64{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}
		if _, err := Project(rows); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("scaled copies collapse after normalization", func(t *testing.T) {
		rows := [][]float64{{1, 2}, {2, 4}, {0.5, 1}}
		if _, err := Project(rows); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestProjectDimensionMismatch(t *testing.T) {
	rows := [][]float64{{1, 0, 0}, {0, 1}}
	if _, err := Project(rows); !errors.Is(err, similarity.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestProjectTwoPoints(t *testing.T) {
	points, err := Project([][]float64{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	// Two points separate symmetrically along the first component.
	if math.Abs(points[0].X+points[1].X) > tolerance {
		t.Errorf("expected symmetric X coordinates, got %f and %f", points[0].X, points[1].X)
	}
	if math.Abs(points[0].X) < 0.5 {
		t.Errorf("expected clear separation on X, got %f", points[0].X)
	}
	// Rank-one data carries no second-component spread.
	for i, p := range points {
		if math.Abs(p.Y) > tolerance {
			t.Errorf("point %d: expected Y near 0, got %f", i, p.Y)
		}
	}
}

func TestProjectVarianceOrdering(t *testing.T) {
	// Unit vectors spread mostly along the first axis.
	rows := [][]float64{{1, 0}, {0, 1}, {-1, 0}}
	points, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantX := []float64{1, 0, -1}
	wantY := []float64{-1.0 / 3, 2.0 / 3, -1.0 / 3}
	for i, p := range points {
		if math.Abs(p.X-wantX[i]) > tolerance {
			t.Errorf("point %d: X = %f, want %f", i, p.X, wantX[i])
		}
		if math.Abs(p.Y-wantY[i]) > tolerance {
			t.Errorf("point %d: Y = %f, want %f", i, p.Y, wantY[i])
		}
	}

	varX, varY := 0.0, 0.0
	for _, p := range points {
		varX += p.X * p.X
		varY += p.Y * p.Y
	}
	if varX < varY {
		t.Errorf("first component should carry the most variance: varX=%f varY=%f", varX, varY)
	}
}

func TestProjectDeterministic(t *testing.T) {
	rows := [][]float64{
		{0.9, 0.1, 0.3},
		{0.1, 0.8, -0.2},
		{-0.4, 0.3, 0.7},
		{0.5, -0.5, 0.1},
	}
	first, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Project(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("projection is not deterministic at point %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTransformExtraRows(t *testing.T) {
	rows := [][]float64{{1, 0}, {0, 1}, {-1, 0}}
	pca, err := Fit(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fitted, err := pca.Transform(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := pca.Transform(rows[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fitted[0] != again[0] {
		t.Errorf("transform of the same row differs: %+v vs %+v", fitted[0], again[0])
	}

	if _, err := pca.Transform([][]float64{{1, 2, 3}}); !errors.Is(err, similarity.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}
