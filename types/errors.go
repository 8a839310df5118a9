package types

import "errors"

var (
	// ErrModelUnavailable indicates the requested embedding model cannot be used.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrInference indicates the embedding or extraction call itself failed.
	ErrInference = errors.New("inference failed")

	// ErrModelMismatch indicates vectors from different models were compared.
	ErrModelMismatch = errors.New("vectors come from different models")
)
