package keywords

import (
	"context"
	"fmt"

	"simlab/similarity"
	"simlab/types"
)

const (
	// DefaultDiversity balances relevance against redundancy in the
	// maximal-marginal-relevance selection.
	DefaultDiversity = 0.5

	// DefaultNgramMax caps candidate phrases at bigrams.
	DefaultNgramMax = 2
)

// EmbedRank extracts keywords by embedding candidate phrases with the
// same model used for the full text and ranking them by similarity to
// the document embedding, diversified with maximal marginal relevance.
type EmbedRank struct {
	provider  types.EmbeddingProvider
	diversity float64
	ngramMax  int
}

// NewEmbedRank creates an extractor that shares the given embedding
// provider.
func NewEmbedRank(provider types.EmbeddingProvider) *EmbedRank {
	return &EmbedRank{
		provider:  provider,
		diversity: DefaultDiversity,
		ngramMax:  DefaultNgramMax,
	}
}

// ExtractKeywords returns up to topK keyword phrases ranked for relevance
// to text. A nil result with nil error means no candidates could be
// extracted.
func (e *EmbedRank) ExtractKeywords(ctx context.Context, text string, topK int) ([]string, error) {
	if topK <= 0 {
		return nil, nil
	}
	phrases := candidates(text, e.ngramMax)
	if len(phrases) == 0 {
		return nil, nil
	}

	doc, err := e.provider.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding document for keyword ranking: %w", err)
	}

	vectors := make([][]float64, len(phrases))
	relevance := make([]float64, len(phrases))
	for i, phrase := range phrases {
		vec, err := e.provider.EmbedText(ctx, phrase)
		if err != nil {
			return nil, fmt.Errorf("embedding candidate %q: %w", phrase, err)
		}
		vectors[i] = vec.Values
		relevance[i] = similarity.Cosine(doc.Values, vec.Values).Score
	}

	picked := mmr(vectors, relevance, topK, e.diversity)
	out := make([]string, len(picked))
	for i, idx := range picked {
		out[i] = phrases[idx]
	}
	return out, nil
}

// mmr selects up to k candidate indices by maximal marginal relevance:
// each round picks the candidate maximizing
// (1-diversity)*relevance - diversity*maxSimilarityToSelected.
func mmr(vectors [][]float64, relevance []float64, k int, diversity float64) []int {
	if k > len(vectors) {
		k = len(vectors)
	}

	selected := make([]int, 0, k)
	remaining := make(map[int]struct{}, len(vectors))
	for i := range vectors {
		remaining[i] = struct{}{}
	}

	// Seed with the most relevant candidate, lowest index on ties.
	best := -1
	for i := range vectors {
		if best == -1 || relevance[i] > relevance[best] {
			best = i
		}
	}
	selected = append(selected, best)
	delete(remaining, best)

	for len(selected) < k {
		bestIdx, bestScore := -1, 0.0
		for i := 0; i < len(vectors); i++ {
			if _, ok := remaining[i]; !ok {
				continue
			}
			maxSim := -1.0
			for _, s := range selected {
				if sim := similarity.Cosine(vectors[i], vectors[s]).Score; sim > maxSim {
					maxSim = sim
				}
			}
			score := (1-diversity)*relevance[i] - diversity*maxSim
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		selected = append(selected, bestIdx)
		delete(remaining, bestIdx)
	}
	return selected
}

var _ types.KeywordExtractor = (*EmbedRank)(nil)
