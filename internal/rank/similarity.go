package rank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"jobclassify-engine/internal/domain"
)

// Embedder turns texts into vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type Similar struct {
	Job        domain.Posting `json:"job"`
	Similarity float64        `json:"similarity"`
}

var ErrNoEmbedder = errors.New("no embedder configured")

// SimilarityRanker orders postings by cosine similarity between the query
// and each posting description.
type SimilarityRanker struct {
	Embedder Embedder
}

func (r SimilarityRanker) TopK(ctx context.Context, query string, postings []domain.Posting, k int) ([]Similar, error) {
	if r.Embedder == nil {
		return nil, ErrNoEmbedder
	}
	if len(postings) == 0 || k <= 0 {
		return []Similar{}, nil
	}

	texts := make([]string, 0, len(postings)+1)
	texts = append(texts, query)
	for _, p := range postings {
		texts = append(texts, p.Description)
	}
	vecs, err := r.Embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(vecs), len(texts))
	}

	out := make([]Similar, len(postings))
	for i, p := range postings {
		out[i] = Similar{Job: p, Similarity: Cosine(vecs[0], vecs[i+1])}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if k < len(out) {
		out = out[:k]
	}
	return out, nil
}

// Cosine returns 0 for mismatched lengths or zero vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
