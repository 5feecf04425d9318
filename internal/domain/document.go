package domain

// Language identifies the language a document or question is written in.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageMacedonian Language = "mk"
)

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageMacedonian
}

// LegalDocument is a single reference text in the grounding corpus.
// Documents are loaded once at startup and never mutated afterwards.
type LegalDocument struct {
	ID       string
	Language Language
	Topic    string
	Title    string
	Body     string
}

// ScoredDocument pairs a document with its relevance to a question.
type ScoredDocument struct {
	Document LegalDocument
	Score    float64
}
