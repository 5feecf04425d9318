package llm

import (
	"context"
	"fmt"

	"legal-chatbot/internal/domain"
)

// FailureKind classifies why a completion call failed.
type FailureKind string

const (
	FailureUnauthenticated FailureKind = "UNAUTHENTICATED"
	FailureUnavailable     FailureKind = "UNAVAILABLE"
	FailureRateLimited     FailureKind = "RATE_LIMITED"
	FailureInvalidResponse FailureKind = "INVALID_RESPONSE"
)

// Request is the backend-agnostic completion request assembled by the prompt
// composer. Backends translate it into their own wire format.
type Request struct {
	SystemPrompt string
	Excerpts     []string
	UserMessage  string
	Language     domain.Language
}

// Response carries the generated answer text.
type Response struct {
	Text string
}

// Error is a normalized backend failure.
type Error struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("llm: %s (%s)", e.Kind, e.Reason)
	}
	return fmt.Sprintf("llm: %s (%s): %v", e.Kind, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError creates a normalized backend failure.
func NewError(kind FailureKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// Backend performs a single completion call against one provider. Exactly one
// backend is active per process; which one is a deployment decision.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req Request) (Response, error)
}
