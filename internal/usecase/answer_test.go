package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/llm"
	"legal-chatbot/internal/repository"
	"legal-chatbot/internal/retrieval"
)

type stubFinder struct {
	docs map[domain.Language][]domain.LegalDocument
}

func (f *stubFinder) FindByLanguage(lang domain.Language) []domain.LegalDocument {
	return f.docs[lang]
}

type stubSelector struct {
	out    []domain.ScoredDocument
	err    error
	called int
	gotK   int
}

func (s *stubSelector) Select(_ context.Context, _ string, _ []domain.LegalDocument, k int) ([]domain.ScoredDocument, error) {
	s.called++
	s.gotK = k
	return s.out, s.err
}

type stubCompleter struct {
	resp     llm.Response
	err      error
	calls    int
	captured llm.Request
}

func (c *stubCompleter) Complete(_ context.Context, req llm.Request) (llm.Response, error) {
	c.calls++
	c.captured = req
	return c.resp, c.err
}

func emptyFinder() *stubFinder {
	return &stubFinder{docs: map[domain.Language][]domain.LegalDocument{}}
}

func newTestService(t *testing.T, docs DocumentFinder, selector DocumentSelector, completer Completer) *AnswerService {
	t.Helper()
	svc, err := NewAnswerService(docs, selector, NewPromptComposer(600, 6000), completer, 4, nil)
	require.NoError(t, err)
	return svc
}

func expectAnswerError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var ucErr *Error
	require.ErrorAs(t, err, &ucErr)
	require.Equal(t, code, ucErr.Code)
}

func TestNewAnswerService_ValidatesDependencies(t *testing.T) {
	composer := NewPromptComposer(600, 6000)

	_, err := NewAnswerService(nil, &stubSelector{}, composer, &stubCompleter{}, 4, nil)
	require.Error(t, err)

	_, err = NewAnswerService(emptyFinder(), nil, composer, &stubCompleter{}, 4, nil)
	require.Error(t, err)

	_, err = NewAnswerService(emptyFinder(), &stubSelector{}, nil, &stubCompleter{}, 4, nil)
	require.Error(t, err)

	_, err = NewAnswerService(emptyFinder(), &stubSelector{}, composer, nil, 4, nil)
	require.Error(t, err)
}

func TestAnswer_WhitespaceMessageNeverReachesGateway(t *testing.T) {
	selector := &stubSelector{}
	completer := &stubCompleter{}
	svc := newTestService(t, emptyFinder(), selector, completer)

	for _, msg := range []string{"", "   ", "\n\t "} {
		_, err := svc.Answer(context.Background(), AnswerInput{Message: msg, Language: domain.LanguageEnglish})
		expectAnswerError(t, err, ErrorInvalidInput)
	}
	require.Zero(t, selector.called)
	require.Zero(t, completer.calls)
}

func TestAnswer_ReturnsGatewayTextUnmodified(t *testing.T) {
	completer := &stubCompleter{resp: llm.Response{Text: "  exact answer text  "}}
	svc := newTestService(t, emptyFinder(), &stubSelector{}, completer)

	out, err := svc.Answer(context.Background(), AnswerInput{Message: "q", Language: domain.LanguageEnglish})
	require.NoError(t, err)
	require.Equal(t, "  exact answer text  ", out.Answer)
	require.Equal(t, 1, completer.calls)
}

func TestAnswer_PassesConfiguredKToSelector(t *testing.T) {
	selector := &stubSelector{}
	svc := newTestService(t, emptyFinder(), selector, &stubCompleter{resp: llm.Response{Text: "ok"}})

	_, err := svc.Answer(context.Background(), AnswerInput{Message: "q", Language: domain.LanguageEnglish})
	require.NoError(t, err)
	require.Equal(t, 4, selector.gotK)
}

func TestAnswer_MapsGatewayFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{name: "unauthenticated", err: llm.NewError(llm.FailureUnauthenticated, "status_401", nil), code: ErrorUpstreamUnauthenticated},
		{name: "unavailable", err: llm.NewError(llm.FailureUnavailable, "timeout", nil), code: ErrorUpstreamUnavailable},
		{name: "rate limited", err: llm.NewError(llm.FailureRateLimited, "status_429", nil), code: ErrorUpstreamRateLimited},
		{name: "invalid response", err: llm.NewError(llm.FailureInvalidResponse, "empty_completion", nil), code: ErrorUpstreamInvalidResponse},
		{name: "unexpected", err: errors.New("boom"), code: ErrorInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, emptyFinder(), &stubSelector{}, &stubCompleter{err: tc.err})
			_, err := svc.Answer(context.Background(), AnswerInput{Message: "q", Language: domain.LanguageEnglish})
			expectAnswerError(t, err, tc.code)
		})
	}
}

func TestAnswer_SelectorFailureIsAbsorbed(t *testing.T) {
	selector := &stubSelector{err: errors.New("embedding service down")}
	completer := &stubCompleter{resp: llm.Response{Text: "ungrounded answer"}}
	svc := newTestService(t, emptyFinder(), selector, completer)

	out, err := svc.Answer(context.Background(), AnswerInput{Message: "q", Language: domain.LanguageEnglish})
	require.NoError(t, err)
	require.Equal(t, "ungrounded answer", out.Answer)
	require.Empty(t, completer.captured.Excerpts)
	require.Contains(t, completer.captured.SystemPrompt, "No authoritative source is available")
}

func TestAnswer_EndToEnd_VATRetrieval(t *testing.T) {
	store, err := repository.New([]domain.LegalDocument{
		{
			ID:       "en-vat-registration",
			Language: domain.LanguageEnglish,
			Topic:    "VAT",
			Title:    "VAT Registration",
			Body:     "Businesses exceeding threshold X must register for VAT within 15 days.",
		},
		{
			ID:       "en-employment",
			Language: domain.LanguageEnglish,
			Topic:    "labor-law",
			Title:    "Employment Contracts",
			Body:     "An employment contract is concluded in written form.",
		},
	})
	require.NoError(t, err)

	selector, err := retrieval.NewSelector(retrieval.NewLexicalScorer())
	require.NoError(t, err)

	completer := &stubCompleter{resp: llm.Response{Text: "You must register within 15 days."}}
	svc, err := NewAnswerService(store, selector, NewPromptComposer(600, 6000), completer, 1, nil)
	require.NoError(t, err)

	out, err := svc.Answer(context.Background(), AnswerInput{
		Message:  "When must I register for VAT?",
		Language: domain.LanguageEnglish,
	})
	require.NoError(t, err)
	require.Equal(t, "You must register within 15 days.", out.Answer)

	require.Len(t, completer.captured.Excerpts, 1)
	require.Contains(t, completer.captured.Excerpts[0], "VAT Registration")
	require.Contains(t, completer.captured.Excerpts[0], "register for VAT within 15 days")
	require.Equal(t, "When must I register for VAT?", completer.captured.UserMessage)
}

func TestAnswer_EndToEnd_EmptyMacedonianCorpusStaysUngrounded(t *testing.T) {
	store, err := repository.New([]domain.LegalDocument{
		{ID: "en-only", Language: domain.LanguageEnglish, Title: "VAT Registration", Body: "body"},
	})
	require.NoError(t, err)

	selector, err := retrieval.NewSelector(retrieval.NewLexicalScorer())
	require.NoError(t, err)

	completer := &stubCompleter{resp: llm.Response{Text: "општ одговор"}}
	svc, err := NewAnswerService(store, selector, NewPromptComposer(600, 6000), completer, 4, nil)
	require.NoError(t, err)

	out, err := svc.Answer(context.Background(), AnswerInput{
		Message:  "Кога мора да се регистрирам за ДДВ?",
		Language: domain.LanguageMacedonian,
	})
	require.NoError(t, err)
	require.Equal(t, "општ одговор", out.Answer)
	require.Equal(t, 1, completer.calls, "generation still happens without grounding")
	require.Empty(t, completer.captured.Excerpts)
	require.Contains(t, completer.captured.SystemPrompt, "нема достапен авторитативен извор")
}

func TestAnswer_UnsupportedLanguageDegradesToUngrounded(t *testing.T) {
	store, err := repository.New([]domain.LegalDocument{
		{ID: "en-only", Language: domain.LanguageEnglish, Title: "VAT Registration", Body: "register for VAT"},
	})
	require.NoError(t, err)

	selector, err := retrieval.NewSelector(retrieval.NewLexicalScorer())
	require.NoError(t, err)

	completer := &stubCompleter{resp: llm.Response{Text: "ok"}}
	svc, err := NewAnswerService(store, selector, NewPromptComposer(600, 6000), completer, 4, nil)
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), AnswerInput{Message: "register for VAT", Language: domain.Language("de")})
	require.NoError(t, err)
	require.Empty(t, completer.captured.Excerpts)
	require.Contains(t, completer.captured.SystemPrompt, "Answer in English.")
}
