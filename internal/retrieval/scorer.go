package retrieval

import (
	"context"
	"strings"
	"unicode"

	"legal-chatbot/internal/domain"
)

// Scorer estimates how relevant a document is to a question. Higher is more
// relevant; scores are only comparable against other scores from the same
// Scorer.
type Scorer interface {
	Score(ctx context.Context, question string, doc domain.LegalDocument) (float64, error)
}

// LexicalScorer ranks documents by term overlap between the question and the
// document title and body. It needs no external service and never fails.
type LexicalScorer struct{}

// NewLexicalScorer creates a LexicalScorer.
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score returns the fraction of distinct question terms that appear in the
// document. The result is in [0, 1].
func (s *LexicalScorer) Score(_ context.Context, question string, doc domain.LegalDocument) (float64, error) {
	terms := tokenize(question)
	if len(terms) == 0 {
		return 0, nil
	}

	docTerms := make(map[string]struct{})
	for _, t := range tokenize(doc.Title + " " + doc.Body) {
		docTerms[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(terms))
	total, matched := 0, 0
	for _, t := range terms {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		total++
		if _, ok := docTerms[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(total), nil
}

// tokenize lowercases s and splits it on anything that is not a letter or a
// digit, dropping single-rune tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			out = append(out, f)
		}
	}
	return out
}
