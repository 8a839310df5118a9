// Package openai implements the OpenAI embedding provider.
package openai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"simlab/tokenizer"
	"simlab/types"
)

const DefaultModel = openai.EmbeddingModelTextEmbedding3Small

// Provider embeds text through OpenAI's embeddings API.
type Provider struct {
	client *openai.Client
	model  string
}

// Config provides configuration options for the OpenAI provider.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Model   string
}

// NewProvider creates an embedding provider for OpenAI. The API key falls
// back to the OPENAI_API_KEY environment variable.
func NewProvider(config Config) (*Provider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OpenAI API key is required", types.ErrModelUnavailable)
		}
	}

	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	if config.OrgID != "" {
		opts = append(opts, option.WithOrganization(config.OrgID))
	}

	client := openai.NewClient(opts...)
	return &Provider{client: &client, model: model}, nil
}

// Model returns the embedding model identifier.
func (p *Provider) Model() string { return p.model }

// EmbedText sends the embedding request to OpenAI. Input longer than the
// model's token limit is truncated first.
func (p *Provider) EmbedText(ctx context.Context, text string) (types.EmbeddingVector, error) {
	input, err := tokenizer.Truncate(text, tokenizer.MaxEmbeddingTokens)
	if err != nil {
		return types.EmbeddingVector{}, fmt.Errorf("%w: %v", types.ErrInference, err)
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{input},
		},
	})
	if err != nil {
		return types.EmbeddingVector{}, fmt.Errorf("%w: %v", types.ErrInference, err)
	}
	if len(resp.Data) == 0 {
		return types.EmbeddingVector{}, fmt.Errorf("%w: no embedding returned by OpenAI", types.ErrInference)
	}

	values := make([]float64, len(resp.Data[0].Embedding))
	copy(values, resp.Data[0].Embedding)
	return types.EmbeddingVector{Model: p.model, Text: text, Values: values}, nil
}

func (p *Provider) Close() {}

var _ types.EmbeddingProvider = (*Provider)(nil)
