package similarity

// DotProduct computes the raw dot product between two vectors.
// No normalization is applied, so the score depends on vector magnitudes
// and callers must not assume a bounded range.
func DotProduct(a, b []float64) Result {
	return Result{Metric: MetricDot, Score: Dot(a, b)}
}
