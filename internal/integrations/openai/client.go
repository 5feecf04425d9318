package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// chatRequest is the minimal request shape for the Chat Completions endpoint.
type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature *float64             `json:"temperature,omitempty"`
}

// chatResponse is the minimal response shape returned by the Chat Completions endpoint.
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Choices []struct {
		Index   int                `json:"index"`
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("openai: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client is a focused client for OpenAI-compatible chat-completion APIs. Groq
// exposes the same wire format, so a Client pointed at the Groq base URL with
// a Groq key serves as that backend unchanged.
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the named provider. The per-call deadline is
// driven by the caller's context, so the underlying http.Client carries no
// timeout of its own.
func NewClient(name, apiKey, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("openai: provider name must not be empty")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key must not be empty")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("openai: model must not be empty")
	}
	c := &Client{
		name:       name,
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string {
	return c.name
}

func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// Complete translates the abstract completion request into a chat-completions
// call and normalizes the result or failure.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: chatMessages(req),
	})
	if err != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "marshal_request", err)
	}

	url := chatURL(c.baseURL)

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "create_request", reqErr)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, doErr := c.resolvedHTTPClient().Do(httpReq)
	if doErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "request_failed", doErr)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return llm.Response{}, classifyStatus(res.StatusCode, url, string(buf))
	}

	raw, readErr := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if readErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "read_response", readErr)
	}

	var payload chatResponse
	if decErr := json.Unmarshal(raw, &payload); decErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureInvalidResponse, "decode_response", decErr)
	}
	if len(payload.Choices) == 0 {
		return llm.Response{}, llm.NewError(llm.FailureInvalidResponse, "no_choices", nil)
	}
	return llm.Response{Text: payload.Choices[0].Message.Content}, nil
}

// resolvedHTTPClient returns the configured HTTP client, or a default if none
// was set (e.g. in tests that nil out the field).
func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{}
}

// chatMessages lays the composed prompt out as chat messages: the system
// instruction first, grounding excerpts as a second system message, and the
// user question last.
func chatMessages(req llm.Request) []domain.ChatMessage {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: req.SystemPrompt},
	}
	if len(req.Excerpts) > 0 {
		messages = append(messages, domain.ChatMessage{
			Role:    domain.RoleSystem,
			Content: strings.Join(req.Excerpts, "\n\n"),
		})
	}
	return append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: req.UserMessage})
}

func classifyStatus(status int, url, body string) *llm.Error {
	reason := fmt.Sprintf("status_%d", status)
	cause := &HTTPStatusError{StatusCode: status, URL: url, Body: body}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.NewError(llm.FailureUnauthenticated, reason, cause)
	case http.StatusTooManyRequests:
		return llm.NewError(llm.FailureRateLimited, reason, cause)
	default:
		return llm.NewError(llm.FailureUnavailable, reason, cause)
	}
}
