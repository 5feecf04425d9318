package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/llm"
)

const (
	defaultExcerptBudget = 600
	defaultPromptBudget  = 6000
)

// PromptComposer assembles the backend-agnostic completion request: a fixed
// per-language system instruction, budgeted excerpts of the retrieved
// documents and the user question. Composition is deterministic for
// identical inputs.
type PromptComposer struct {
	excerptBudget int // max characters per document excerpt
	promptBudget  int // max characters across the whole request
}

// NewPromptComposer creates a composer with the given character budgets.
// Non-positive budgets fall back to defaults.
func NewPromptComposer(excerptBudget, promptBudget int) *PromptComposer {
	if excerptBudget <= 0 {
		excerptBudget = defaultExcerptBudget
	}
	if promptBudget <= 0 {
		promptBudget = defaultPromptBudget
	}
	return &PromptComposer{excerptBudget: excerptBudget, promptBudget: promptBudget}
}

// Compose builds the completion request. Retrieved documents must already be
// ordered by descending relevance; when the assembled prompt would exceed the
// total budget the lowest-relevance excerpts are dropped first. With no
// excerpts left the system instruction discloses the missing grounding.
func (c *PromptComposer) Compose(question string, lang domain.Language, retrieved []domain.ScoredDocument) llm.Request {
	excerpts := make([]string, 0, len(retrieved))
	for _, sd := range retrieved {
		excerpts = append(excerpts, formatExcerpt(sd.Document, c.excerptBudget))
	}

	for len(excerpts) > 0 && requestSize(systemPrompt(lang, true), excerpts, question) > c.promptBudget {
		excerpts = excerpts[:len(excerpts)-1]
	}

	return llm.Request{
		SystemPrompt: systemPrompt(lang, len(excerpts) > 0),
		Excerpts:     excerpts,
		UserMessage:  question,
		Language:     lang,
	}
}

func requestSize(system string, excerpts []string, question string) int {
	size := len(system) + len(question)
	for _, e := range excerpts {
		size += len(e) + 2
	}
	return size
}

func formatExcerpt(doc domain.LegalDocument, budget int) string {
	return doc.Title + "\n" + truncateAtWord(doc.Body, budget)
}

// truncateAtWord shortens s to at most max bytes, cutting at the last
// whitespace boundary so no word is ever split.
func truncateAtWord(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	cut := s[:max]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace)
}

// systemPrompt returns the fixed instruction set for the given language. An
// unsupported language falls back to the English instructions so the request
// still produces a valid prompt.
func systemPrompt(lang domain.Language, grounded bool) string {
	if lang == domain.LanguageMacedonian {
		return macedonianSystemPrompt(grounded)
	}
	return englishSystemPrompt(grounded)
}

func englishSystemPrompt(grounded bool) string {
	lines := []string{
		"You are a legal and accounting assistant for the Republic of North Macedonia.",
		"Answer in English.",
		"Only answer questions about law, accounting and business regulation in North Macedonia.",
	}
	if grounded {
		lines = append(lines,
			"Base your answer strictly on the reference excerpts provided in this request.",
			"Cite the title of every excerpt you rely on.",
			"If the excerpts do not cover the question, say so instead of guessing.",
		)
	} else {
		lines = append(lines,
			"No authoritative source is available for this question.",
			"State explicitly that your answer is general guidance and not based on an authoritative source.",
		)
	}
	lines = append(lines, "Never invent laws, article numbers or citations.")
	return strings.Join(lines, "\n")
}

func macedonianSystemPrompt(grounded bool) string {
	lines := []string{
		"Ти си асистент за правни и сметководствени прашања за Република Северна Македонија.",
		"Одговарај на македонски јазик.",
		"Одговарај само на прашања за право, сметководство и деловна регулатива во Северна Македонија.",
	}
	if grounded {
		lines = append(lines,
			"Засновај го одговорот исклучиво на приложените извадоци од прописи.",
			"Наведи го насловот на секој извадок што го користиш.",
			"Ако извадоците не го покриваат прашањето, кажи го тоа наместо да претпоставуваш.",
		)
	} else {
		lines = append(lines,
			"За ова прашање нема достапен авторитативен извор.",
			"Наведи изрично дека одговорот е општа насока и не се заснова на авторитативен извор.",
		)
	}
	lines = append(lines, "Никогаш не измислувај закони, членови или цитати.")
	return strings.Join(lines, "\n")
}
