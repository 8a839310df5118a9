// Package tokenizer counts and truncates tokens for embedding inputs
// using tiktoken's Cl100kBase encoding, the encoding used by OpenAI's
// embedding models.
package tokenizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// MaxEmbeddingTokens is the input limit of OpenAI's text-embedding-3
// family.
const MaxEmbeddingTokens = 8191

// CountTokens counts the tokens in text. This is a local operation that
// requires no API call.
func CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	ids, _, err := enc.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("tokenization failed: %w", err)
	}
	return len(ids), nil
}

// Truncate returns text cut to at most maxTokens tokens. Text already
// within the limit is returned unchanged.
func Truncate(text string, maxTokens int) (string, error) {
	if text == "" || maxTokens <= 0 {
		return "", nil
	}
	enc, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return "", fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	ids, _, err := enc.Encode(text)
	if err != nil {
		return "", fmt.Errorf("tokenization failed: %w", err)
	}
	if len(ids) <= maxTokens {
		return text, nil
	}
	out, err := enc.Decode(ids[:maxTokens])
	if err != nil {
		return "", fmt.Errorf("detokenization failed: %w", err)
	}
	return out, nil
}
