package repository

import (
	"errors"
	"fmt"

	"legal-chatbot/internal/domain"
)

// Store holds the fixed grounding corpus indexed by language. It is built
// once at startup and read-only afterwards, so it is safe for concurrent use
// without locking.
type Store struct {
	byLanguage map[domain.Language][]domain.LegalDocument
}

// New creates a Store from the given documents. Every document must carry a
// unique ID and a supported language.
func New(docs []domain.LegalDocument) (*Store, error) {
	if len(docs) == 0 {
		return nil, errors.New("repository: corpus must not be empty")
	}
	seen := make(map[string]struct{}, len(docs))
	byLanguage := make(map[domain.Language][]domain.LegalDocument, 2)
	for _, doc := range docs {
		if doc.ID == "" {
			return nil, errors.New("repository: document ID must not be empty")
		}
		if _, dup := seen[doc.ID]; dup {
			return nil, fmt.Errorf("repository: duplicate document ID %q", doc.ID)
		}
		if !doc.Language.Valid() {
			return nil, fmt.Errorf("repository: document %q has unsupported language %q", doc.ID, doc.Language)
		}
		seen[doc.ID] = struct{}{}
		byLanguage[doc.Language] = append(byLanguage[doc.Language], doc)
	}
	return &Store{byLanguage: byLanguage}, nil
}

// NewFromSeed creates a Store loaded with the built-in corpus.
func NewFromSeed() (*Store, error) {
	return New(seedCorpus())
}

// FindByLanguage returns the documents written in lang. An unsupported
// language yields an empty result rather than an error so callers can
// degrade to an ungrounded answer.
func (s *Store) FindByLanguage(lang domain.Language) []domain.LegalDocument {
	return s.byLanguage[lang]
}
