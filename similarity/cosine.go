package similarity

// Cosine computes cosine similarity: dot(a,b) / (||a|| * ||b||).
// Result is in [-1, 1].
//
// When either vector has zero norm the angle is undefined; by convention
// the score is 0 and the result is marked Degenerate instead of
// returning NaN or an error.
func Cosine(a, b []float64) Result {
	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return Result{Metric: MetricCosine, Score: 0, Degenerate: true}
	}
	return Result{Metric: MetricCosine, Score: Dot(a, b) / (normA * normB)}
}
