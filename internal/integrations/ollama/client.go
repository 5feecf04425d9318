package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"legal-chatbot/internal/llm"
)

const defaultBaseURL = "http://localhost:11434"

// generateRequest is the request shape for Ollama's generate endpoint.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the minimal response shape for the generate endpoint.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Client is a backend for a locally hosted model served by Ollama.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the Ollama instance at baseURL. Local models
// need no credential.
func NewClient(baseURL, model string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("ollama: model must not be empty")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Name() string {
	return "ollama"
}

// Complete flattens the composed prompt into a single generate call and
// normalizes the result or failure.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: flatPrompt(req),
		Stream: false,
	})
	if err != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "marshal_request", err)
	}

	url := c.baseURL + "/api/generate"

	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "create_request", reqErr)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, doErr := c.httpClient.Do(httpReq)
	if doErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "request_failed", doErr)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		kind := llm.FailureUnavailable
		if res.StatusCode == http.StatusTooManyRequests {
			kind = llm.FailureRateLimited
		}
		return llm.Response{}, llm.NewError(kind, fmt.Sprintf("status_%d", res.StatusCode),
			fmt.Errorf("ollama: unexpected status %d from %s: %s", res.StatusCode, url, string(buf)))
	}

	raw, readErr := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if readErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "read_response", readErr)
	}

	var payload generateResponse
	if decErr := json.Unmarshal(raw, &payload); decErr != nil {
		return llm.Response{}, llm.NewError(llm.FailureInvalidResponse, "decode_response", decErr)
	}
	if payload.Error != "" {
		return llm.Response{}, llm.NewError(llm.FailureUnavailable, "ollama_error", errors.New(payload.Error))
	}
	return llm.Response{Text: payload.Response}, nil
}

// flatPrompt concatenates the system instruction, the grounding excerpts and
// the user question into the single prompt string the generate endpoint
// expects.
func flatPrompt(req llm.Request) string {
	var b strings.Builder
	b.WriteString(req.SystemPrompt)
	b.WriteString("\n\n")
	for _, excerpt := range req.Excerpts {
		b.WriteString(excerpt)
		b.WriteString("\n\n")
	}
	b.WriteString("Question: ")
	b.WriteString(req.UserMessage)
	b.WriteString("\nAnswer: ")
	return b.String()
}
