package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBackoff = 500 * time.Millisecond
)

// Gateway wraps the configured backend with a per-attempt timeout and a
// bounded retry policy. UNAVAILABLE and RATE_LIMITED failures are retried at
// most once after a backoff; UNAUTHENTICATED and INVALID_RESPONSE surface
// immediately. There is no fallback from one vendor to another at runtime.
type Gateway struct {
	backend      Backend
	timeout      time.Duration
	backoff      time.Duration
	retryEnabled bool
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout bounds each backend attempt.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithBackoff sets the pause before the single retry.
func WithBackoff(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.backoff = d
		}
	}
}

// WithRetry enables or disables the single bounded retry.
func WithRetry(enabled bool) Option {
	return func(g *Gateway) {
		g.retryEnabled = enabled
	}
}

// NewGateway creates a Gateway around the given backend.
func NewGateway(backend Backend, opts ...Option) (*Gateway, error) {
	if backend == nil {
		return nil, errors.New("llm: backend must not be nil")
	}
	g := &Gateway{
		backend:      backend,
		timeout:      defaultTimeout,
		backoff:      defaultBackoff,
		retryEnabled: true,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Name returns the active backend's name.
func (g *Gateway) Name() string {
	return g.backend.Name()
}

// Complete performs the completion call against the active backend.
func (g *Gateway) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := g.attempt(ctx, req)
	if err == nil {
		return resp, nil
	}
	if !g.retryEnabled || !retryable(err) {
		return Response{}, err
	}
	if sleepErr := g.sleep(ctx, g.backoff); sleepErr != nil {
		return Response{}, NewError(FailureUnavailable, "request_cancelled", sleepErr)
	}
	return g.attempt(ctx, req)
}

func (g *Gateway) attempt(ctx context.Context, req Request) (Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.backend.Complete(callCtx, req)
	if err != nil {
		return Response{}, normalize(err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return Response{}, NewError(FailureInvalidResponse, "empty_completion", nil)
	}
	return resp, nil
}

// normalize passes through failures the backend already classified and maps
// context errors onto UNAVAILABLE.
func normalize(err error) error {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewError(FailureUnavailable, "timeout", err)
	case errors.Is(err, context.Canceled):
		return NewError(FailureUnavailable, "cancelled", err)
	default:
		return NewError(FailureUnavailable, "backend_error", err)
	}
}

func retryable(err error) bool {
	var backendErr *Error
	if !errors.As(err, &backendErr) {
		return false
	}
	return backendErr.Kind == FailureUnavailable || backendErr.Kind == FailureRateLimited
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
