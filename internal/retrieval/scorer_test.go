package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"legal-chatbot/internal/domain"
)

func TestLexicalScorer_Overlap(t *testing.T) {
	s := NewLexicalScorer()
	d := domain.LegalDocument{
		ID:    "en-vat-registration",
		Title: "VAT Registration",
		Body:  "Businesses exceeding the threshold must register for VAT within 15 days.",
	}

	score, err := s.Score(context.Background(), "When must I register for VAT?", d)
	require.NoError(t, err)
	require.Greater(t, score, 0.0)
	require.LessOrEqual(t, score, 1.0)

	unrelated, err := s.Score(context.Background(), "chocolate cake recipe", d)
	require.NoError(t, err)
	require.Zero(t, unrelated)
	require.Greater(t, score, unrelated)
}

func TestLexicalScorer_CaseInsensitive(t *testing.T) {
	s := NewLexicalScorer()
	d := domain.LegalDocument{ID: "d", Title: "VAT Registration", Body: "register for VAT"}

	upper, err := s.Score(context.Background(), "REGISTER FOR VAT", d)
	require.NoError(t, err)
	lower, err := s.Score(context.Background(), "register for vat", d)
	require.NoError(t, err)
	require.Equal(t, lower, upper)
}

func TestLexicalScorer_EmptyQuestion(t *testing.T) {
	s := NewLexicalScorer()
	score, err := s.Score(context.Background(), "  ?! ", domain.LegalDocument{Title: "t", Body: "b"})
	require.NoError(t, err)
	require.Zero(t, score)
}

func TestLexicalScorer_Cyrillic(t *testing.T) {
	s := NewLexicalScorer()
	d := domain.LegalDocument{
		ID:    "mk-vat-registration",
		Title: "Регистрација за ДДВ",
		Body:  "Пријавата за регистрација се поднесува во рок од 15 дена.",
	}
	score, err := s.Score(context.Background(), "Како се поднесува пријавата за ДДВ?", d)
	require.NoError(t, err)
	require.Greater(t, score, 0.0)
}

func TestTokenize(t *testing.T) {
	require.Equal(t, []string{"vat", "18", "percent"}, tokenize("VAT: 18 percent!"))
	require.Empty(t, tokenize("a . ! x"))
}
