package similarity

import "math"

// Euclidean computes similarity based on Euclidean distance.
// Returns 1 / (1 + distance), always in (0, 1], where 1 means identical
// vectors. Monotonically decreasing in distance and never divides by zero.
func Euclidean(a, b []float64) Result {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return Result{Metric: MetricEuclidean, Score: 1 / (1 + math.Sqrt(sum))}
}
