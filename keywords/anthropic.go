package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"simlab/types"
)

const extractSystemPrompt = `You extract keywords from text. Given a piece of text, return the most salient keywords and keyphrases (1-2 words each), ordered from most to least relevant.

Return ONLY a JSON array of lowercase strings. No additional text.
Example: ["signal drivers", "hierarchy", "eclipse ide"]`

// AnthropicConfig provides configuration options for the Claude-backed
// extractor.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicExtractor extracts keywords with a Claude model.
type AnthropicExtractor struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicExtractor creates a Claude-backed keyword extractor. The
// API key falls back to the ANTHROPIC_API_KEY environment variable.
func NewAnthropicExtractor(config AnthropicConfig) (*AnthropicExtractor, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: Anthropic API key is required", types.ErrModelUnavailable)
		}
	}

	model := anthropic.Model(config.Model)
	if model == "" {
		model = anthropic.ModelClaude3_5HaikuLatest
	}

	return &AnthropicExtractor{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// ExtractKeywords asks the model for up to topK keywords. A nil result
// with nil error means the model found none.
func (e *AnthropicExtractor) ExtractKeywords(ctx context.Context, text string, topK int) ([]string, error) {
	if topK <= 0 || strings.TrimSpace(text) == "" {
		return nil, nil
	}

	prompt := fmt.Sprintf("Extract at most %d keywords from this text:\n\n%s", topK, text)
	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: 512,
		System: []anthropic.TextBlockParam{
			{Text: extractSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInference, err)
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	parsed, err := parseKeywordList(content.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInference, err)
	}
	if len(parsed) > topK {
		parsed = parsed[:topK]
	}
	return parsed, nil
}

// parseKeywordList pulls the JSON array out of the model response,
// tolerating surrounding prose the prompt asks the model to omit.
func parseKeywordList(content string) ([]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in response: %q", content)
	}

	var raw []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse keyword list: %w", err)
	}

	out := raw[:0]
	for _, kw := range raw {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

var _ types.KeywordExtractor = (*AnthropicExtractor)(nil)
