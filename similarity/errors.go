package similarity

import "errors"

var (
	// ErrDimensionMismatch indicates two vectors of different length were compared.
	ErrDimensionMismatch = errors.New("vector dimensions do not match")

	// ErrUnknownMetric indicates a metric name outside the supported set.
	ErrUnknownMetric = errors.New("unknown similarity metric")

	// ErrZeroVector indicates an operation that cannot normalize a zero-norm vector.
	ErrZeroVector = errors.New("zero-norm vector")
)
