package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"legal-chatbot/internal/domain"
)

// Selector ranks a language-restricted corpus against a question and returns
// the top documents.
type Selector struct {
	scorer Scorer
}

// NewSelector creates a Selector using the given scoring strategy.
func NewSelector(scorer Scorer) (*Selector, error) {
	if scorer == nil {
		return nil, errors.New("retrieval: scorer must not be nil")
	}
	return &Selector{scorer: scorer}, nil
}

// Select scores every candidate and returns at most k documents ordered by
// score descending, ties broken by document ID ascending so repeated calls
// with identical inputs yield identical results. Candidates that score zero
// are dropped; an empty corpus yields an empty result, not an error.
func (s *Selector) Select(ctx context.Context, question string, docs []domain.LegalDocument, k int) ([]domain.ScoredDocument, error) {
	if k <= 0 || len(docs) == 0 {
		return nil, nil
	}

	scored := make([]domain.ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		score, err := s.scorer.Score(ctx, question, doc)
		if err != nil {
			return nil, fmt.Errorf("retrieval: score document %q: %w", doc.ID, err)
		}
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredDocument{Document: doc, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Document.ID < scored[j].Document.ID
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
