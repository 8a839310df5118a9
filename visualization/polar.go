// Package visualization derives renderable geometry from a pair of
// embedding vectors: polar rays for the angle between them and ranked
// per-dimension contributions to their cosine score.
package visualization

import (
	"fmt"
	"math"

	"simlab/similarity"
)

// Ray is one vector drawn from the origin at a fixed angle.
type Ray struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// Polar describes the angular relationship between two vectors: ray A is
// anchored at angle 0 and ray B sits at the angle between the vectors,
// so only the relative angle matters. Radii are the vector norms.
type Polar struct {
	Cosine     float64 `json:"cosine"`
	Angle      float64 `json:"angle"`
	Degrees    float64 `json:"degrees"`
	A          Ray     `json:"a"`
	B          Ray     `json:"b"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// BuildPolar computes the polar representation of a and b. The cosine is
// clamped to [-1, 1] before the inverse cosine so floating-point
// overshoot never produces a domain error. A zero-norm input marks the
// result Degenerate with angle 0.
func BuildPolar(a, b []float64) (Polar, error) {
	if len(a) != len(b) {
		return Polar{}, fmt.Errorf("%w: %d vs %d", similarity.ErrDimensionMismatch, len(a), len(b))
	}

	res := similarity.Cosine(a, b)
	cos := math.Max(-1, math.Min(1, res.Score))

	var angle float64
	if !res.Degenerate {
		angle = math.Acos(cos)
	}
	return Polar{
		Cosine:     cos,
		Angle:      angle,
		Degrees:    angle * 180 / math.Pi,
		A:          Ray{Angle: 0, Radius: similarity.Norm(a)},
		B:          Ray{Angle: angle, Radius: similarity.Norm(b)},
		Degenerate: res.Degenerate,
	}, nil
}
