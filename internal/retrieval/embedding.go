package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/philippgille/chromem-go"

	"legal-chatbot/internal/domain"
)

// EmbeddingFunc produces a vector embedding for a piece of text. It matches
// chromem-go's embedding function shape so chromem.NewEmbeddingFuncOpenAI and
// friends plug in directly.
type EmbeddingFunc = chromem.EmbeddingFunc

// EmbeddingScorer ranks documents by cosine similarity between a question
// embedding and per-document embeddings precomputed via Prime.
type EmbeddingScorer struct {
	embed EmbeddingFunc

	mu       sync.RWMutex
	docs     map[string][]float32
	lastQ    string
	lastQVec []float32
}

// NewEmbeddingScorer creates an EmbeddingScorer backed by the given embedding
// function.
func NewEmbeddingScorer(embed EmbeddingFunc) (*EmbeddingScorer, error) {
	if embed == nil {
		return nil, errors.New("retrieval: embedding func must not be nil")
	}
	return &EmbeddingScorer{
		embed: embed,
		docs:  make(map[string][]float32),
	}, nil
}

// Prime computes and caches embeddings for the given documents. Call it once
// at startup with the full corpus so Score never has to embed a document on
// the request path.
func (s *EmbeddingScorer) Prime(ctx context.Context, docs []domain.LegalDocument) error {
	for _, doc := range docs {
		vec, err := s.embed(ctx, doc.Title+"\n"+doc.Body)
		if err != nil {
			return fmt.Errorf("retrieval: embed document %q: %w", doc.ID, err)
		}
		s.mu.Lock()
		s.docs[doc.ID] = vec
		s.mu.Unlock()
	}
	return nil
}

// Score returns the cosine similarity between the question and the document.
func (s *EmbeddingScorer) Score(ctx context.Context, question string, doc domain.LegalDocument) (float64, error) {
	qVec, err := s.questionEmbedding(ctx, question)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	dVec, ok := s.docs[doc.ID]
	s.mu.RUnlock()
	if !ok {
		dVec, err = s.embed(ctx, doc.Title+"\n"+doc.Body)
		if err != nil {
			return 0, fmt.Errorf("retrieval: embed document %q: %w", doc.ID, err)
		}
		s.mu.Lock()
		s.docs[doc.ID] = dVec
		s.mu.Unlock()
	}

	return cosineSimilarity(qVec, dVec), nil
}

// questionEmbedding memoizes the most recent question so scoring a corpus
// embeds the question once, not once per document.
func (s *EmbeddingScorer) questionEmbedding(ctx context.Context, question string) ([]float32, error) {
	s.mu.RLock()
	if s.lastQ == question && s.lastQVec != nil {
		vec := s.lastQVec
		s.mu.RUnlock()
		return vec, nil
	}
	s.mu.RUnlock()

	vec, err := s.embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed question: %w", err)
	}
	s.mu.Lock()
	s.lastQ = question
	s.lastQVec = vec
	s.mu.Unlock()
	return vec, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
