// Package providers constructs embedding providers by name.
package providers

import (
	"context"
	"errors"

	"simlab/providers/gemini"
	"simlab/providers/openai"
	"simlab/types"
)

var ErrUnsupportedProvider = errors.New("unsupported embedding provider")

// ProviderType represents the type of embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
)

// Config carries the common provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Model   string
}

// New creates an embedding provider of the given type.
func New(ctx context.Context, providerType ProviderType, config Config) (types.EmbeddingProvider, error) {
	switch providerType {
	case ProviderOpenAI:
		return openai.NewProvider(openai.Config{
			APIKey:  config.APIKey,
			BaseURL: config.BaseURL,
			OrgID:   config.OrgID,
			Model:   config.Model,
		})
	case ProviderGemini:
		return gemini.NewProvider(ctx, gemini.Config{
			APIKey: config.APIKey,
			Model:  config.Model,
		})
	default:
		return nil, ErrUnsupportedProvider
	}
}
