package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/llm"
)

const defaultMaxDocuments = 4

// DocumentFinder exposes the read contract of the document store.
type DocumentFinder interface {
	FindByLanguage(lang domain.Language) []domain.LegalDocument
}

// DocumentSelector ranks a corpus against a question and returns at most k
// documents ordered by descending relevance.
type DocumentSelector interface {
	Select(ctx context.Context, question string, docs []domain.LegalDocument, k int) ([]domain.ScoredDocument, error)
}

// Completer performs one completion call against the configured LLM backend.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (llm.Response, error)
}

// AnswerService drives the retrieval-augmented answer pipeline: select
// grounding documents, compose the prompt, call the LLM gateway. Each call is
// independent; no state is written during a request.
type AnswerService struct {
	docs         DocumentFinder
	selector     DocumentSelector
	composer     *PromptComposer
	llm          Completer
	maxDocuments int
	logger       *slog.Logger
}

type AnswerInput struct {
	Message  string
	Language domain.Language
}

type AnswerOutput struct {
	Answer string
}

// NewAnswerService creates the answer pipeline from its collaborators.
func NewAnswerService(docs DocumentFinder, selector DocumentSelector, composer *PromptComposer, completer Completer, maxDocuments int, logger *slog.Logger) (*AnswerService, error) {
	if docs == nil {
		return nil, errors.New("usecase: document finder must not be nil")
	}
	if selector == nil {
		return nil, errors.New("usecase: selector must not be nil")
	}
	if composer == nil {
		return nil, errors.New("usecase: composer must not be nil")
	}
	if completer == nil {
		return nil, errors.New("usecase: completer must not be nil")
	}
	if maxDocuments <= 0 {
		maxDocuments = defaultMaxDocuments
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerService{
		docs:         docs,
		selector:     selector,
		composer:     composer,
		llm:          completer,
		maxDocuments: maxDocuments,
		logger:       logger,
	}, nil
}

// Answer resolves a user question to either the generated answer or a typed
// failure. It never panics across this boundary.
func (s *AnswerService) Answer(ctx context.Context, in AnswerInput) (AnswerOutput, error) {
	question := strings.TrimSpace(in.Message)
	if question == "" {
		return AnswerOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}

	corpus := s.docs.FindByLanguage(in.Language)

	retrieved, err := s.selector.Select(ctx, question, corpus, s.maxDocuments)
	if err != nil {
		// Retrieval degradation is absorbed: the answer proceeds ungrounded
		// and the composed prompt discloses the missing grounding.
		s.logger.Warn("retrieval degraded, answering ungrounded", "err", err, "language", string(in.Language))
		retrieved = nil
	}

	req := s.composer.Compose(question, in.Language, retrieved)

	resp, err := s.llm.Complete(ctx, req)
	if err != nil {
		return AnswerOutput{}, mapGatewayError(err)
	}
	return AnswerOutput{Answer: resp.Text}, nil
}

// mapGatewayError converts normalized gateway failures into the usecase error
// taxonomy.
func mapGatewayError(err error) *Error {
	var gwErr *llm.Error
	if !errors.As(err, &gwErr) {
		return newError(ErrorInternal, "gateway_error", err)
	}
	switch gwErr.Kind {
	case llm.FailureUnauthenticated:
		return newError(ErrorUpstreamUnauthenticated, gwErr.Reason, err)
	case llm.FailureRateLimited:
		return newError(ErrorUpstreamRateLimited, gwErr.Reason, err)
	case llm.FailureInvalidResponse:
		return newError(ErrorUpstreamInvalidResponse, gwErr.Reason, err)
	default:
		return newError(ErrorUpstreamUnavailable, gwErr.Reason, err)
	}
}
