package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"simlab/types"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "unigrams and bigrams, stopwords filtered",
			text: "the quick brown fox",
			want: []string{"quick", "quick brown", "brown", "brown fox", "fox"},
		},
		{
			name: "bigrams never span stopwords",
			text: "learning is fun",
			want: []string{"learning", "fun"},
		},
		{
			name: "duplicates collapse to first appearance",
			text: "go go go",
			want: []string{"go", "go go"},
		},
		{
			name: "stopword-only text yields nothing",
			text: "to be or not to be",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidates(tt.text, DefaultNgramMax)
			if len(got) != len(tt.want) {
				t.Fatalf("candidates(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSentence(t *testing.T) {
	if got := Sentence([]string{"signal drivers", "hierarchy"}); got != "signal drivers hierarchy" {
		t.Errorf("Sentence = %q", got)
	}
	if got := Sentence(nil); got != "" {
		t.Errorf("Sentence(nil) = %q, want empty", got)
	}
}

// rankProvider returns fixed embeddings per phrase so MMR selection is
// predictable.
type rankProvider struct {
	embeddings map[string][]float64
}

func (p *rankProvider) EmbedText(_ context.Context, text string) (types.EmbeddingVector, error) {
	if vec, ok := p.embeddings[text]; ok {
		return types.EmbeddingVector{Model: "mock", Text: text, Values: vec}, nil
	}
	return types.EmbeddingVector{Model: "mock", Text: text, Values: []float64{0.1, 0.1, 0.1}}, nil
}

func (p *rankProvider) Model() string { return "mock" }
func (p *rankProvider) Close()        {}

func TestEmbedRankExtractKeywords(t *testing.T) {
	provider := &rankProvider{embeddings: map[string][]float64{
		"machine learning beats guessing": {1, 0, 0},
		"machine learning":                {0.95, 0, 0.1},
		"machine":                         {0.9, 0.1, 0},
		"learning":                        {0.8, 0, 0.2},
		"beats":                           {0, 1, 0},
		"guessing":                        {0, 0.9, 0.1},
		"learning beats":                  {0.4, 0.4, 0},
		"beats guessing":                  {0, 0.95, 0},
	}}
	e := NewEmbedRank(provider)

	got, err := e.ExtractKeywords(context.Background(), "machine learning beats guessing", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got)
	}
	// The most document-relevant candidate always seeds the selection.
	if got[0] != "machine learning" {
		t.Errorf("expected %q first, got %q", "machine learning", got[0])
	}
}

func TestEmbedRankEmptyInputs(t *testing.T) {
	e := NewEmbedRank(&rankProvider{})

	t.Run("stopword-only text", func(t *testing.T) {
		got, err := e.ExtractKeywords(context.Background(), "to be or not to be", 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil keywords, got %v", got)
		}
	})

	t.Run("zero topK", func(t *testing.T) {
		got, err := e.ExtractKeywords(context.Background(), "plenty of words here", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil keywords, got %v", got)
		}
	})

	t.Run("topK beyond candidate count", func(t *testing.T) {
		got, err := e.ExtractKeywords(context.Background(), "solo", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "solo" {
			t.Errorf("expected [solo], got %v", got)
		}
	})
}

func TestNewAnthropicExtractor(t *testing.T) {
	t.Run("model name from plain config string", func(t *testing.T) {
		e, err := NewAnthropicExtractor(AnthropicConfig{APIKey: "test-key", Model: "claude-sonnet-4-5"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.model != anthropic.Model("claude-sonnet-4-5") {
			t.Errorf("model = %q, want claude-sonnet-4-5", e.model)
		}
	})

	t.Run("default model", func(t *testing.T) {
		e, err := NewAnthropicExtractor(AnthropicConfig{APIKey: "test-key"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.model != anthropic.ModelClaude3_5HaikuLatest {
			t.Errorf("model = %q, want default", e.model)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		_, err := NewAnthropicExtractor(AnthropicConfig{})
		if !errors.Is(err, types.ErrModelUnavailable) {
			t.Fatalf("expected ErrModelUnavailable, got %v", err)
		}
	})
}

func TestParseKeywordList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "clean JSON array",
			content: `["alpha", "beta gamma"]`,
			want:    []string{"alpha", "beta gamma"},
		},
		{
			name:    "array wrapped in prose",
			content: "Here you go: [\"alpha\"] hope that helps",
			want:    []string{"alpha"},
		},
		{
			name:    "blank entries dropped",
			content: `["alpha", "  ", ""]`,
			want:    []string{"alpha"},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    nil,
		},
		{
			name:    "no array at all",
			content: "I could not find any keywords.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseKeywordList(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keyword %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
