// Package gemini implements the Gemini embedding provider.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"simlab/types"
)

const DefaultModel = "text-embedding-004"

// Provider embeds text through the Gemini API.
type Provider struct {
	client *genai.Client
	model  string
}

// Config provides configuration options for the Gemini provider.
type Config struct {
	APIKey string
	Model  string
}

// NewProvider creates an embedding provider for Gemini. The API key falls
// back to the GEMINI_API_KEY environment variable.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: Gemini API key is required", types.ErrModelUnavailable)
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrModelUnavailable, err)
	}

	return &Provider{client: client, model: model}, nil
}

// Model returns the embedding model identifier.
func (p *Provider) Model() string { return p.model }

// EmbedText sends the embedding request to Gemini.
func (p *Provider) EmbedText(ctx context.Context, text string) (types.EmbeddingVector, error) {
	resp, err := p.client.Models.EmbedContent(ctx, p.model, genai.Text(text), nil)
	if err != nil {
		return types.EmbeddingVector{}, fmt.Errorf("%w: %v", types.ErrInference, err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return types.EmbeddingVector{}, fmt.Errorf("%w: no embedding returned by Gemini", types.ErrInference)
	}

	raw := resp.Embeddings[0].Values
	values := make([]float64, len(raw))
	for i, v := range raw {
		values[i] = float64(v)
	}
	return types.EmbeddingVector{Model: p.model, Text: text, Values: values}, nil
}

func (p *Provider) Close() {}

var _ types.EmbeddingProvider = (*Provider)(nil)
