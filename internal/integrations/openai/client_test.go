package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/llm"
)

// ---------------------------------------------------------------------------
// chatURL helper
// ---------------------------------------------------------------------------

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions"},
		{"https://api.groq.com/openai/v1/", "https://api.groq.com/openai/v1/chat/completions"},
		{"http://localhost:8080", "http://localhost:8080/v1/chat/completions"},
		{"", "https://api.openai.com/v1/chat/completions"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base), "base=%q", tc.base)
	}
}

// ---------------------------------------------------------------------------
// NewClient
// ---------------------------------------------------------------------------

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "key", "model")
	require.Error(t, err)

	_, err = NewClient("openai", " ", "model")
	require.Error(t, err)

	_, err = NewClient("openai", "key", "")
	require.Error(t, err)

	c, err := NewClient("groq", "key", "model")
	require.NoError(t, err)
	require.Equal(t, "groq", c.Name())
	require.Equal(t, defaultBaseURL, c.baseURL)
}

// ---------------------------------------------------------------------------
// Complete
// ---------------------------------------------------------------------------

func chatServer(t *testing.T, status int, body string, captured *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient("openai", "test-key", "gpt-4o-mini", WithBaseURL(baseURL))
	require.NoError(t, err)
	return c
}

func TestComplete_HappyPath(t *testing.T) {
	var captured chatRequest
	srv := chatServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"Registration is due within 15 days."}}]}`,
		&captured)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.Complete(context.Background(), llm.Request{
		SystemPrompt: "You are a legal assistant.",
		Excerpts:     []string{"VAT Registration\nexcerpt body"},
		UserMessage:  "When must I register for VAT?",
		Language:     domain.LanguageEnglish,
	})
	require.NoError(t, err)
	require.Equal(t, "Registration is due within 15 days.", resp.Text)

	require.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 3)
	require.Equal(t, domain.RoleSystem, captured.Messages[0].Role)
	require.Equal(t, "You are a legal assistant.", captured.Messages[0].Content)
	require.Equal(t, domain.RoleSystem, captured.Messages[1].Role)
	require.Contains(t, captured.Messages[1].Content, "VAT Registration")
	require.Equal(t, domain.RoleUser, captured.Messages[2].Role)
	require.Equal(t, "When must I register for VAT?", captured.Messages[2].Content)
}

func TestComplete_NoExcerptsOmitsGroundingMessage(t *testing.T) {
	var captured chatRequest
	srv := chatServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`, &captured)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Complete(context.Background(), llm.Request{SystemPrompt: "sys", UserMessage: "q"})
	require.NoError(t, err)
	require.Len(t, captured.Messages, 2)
	require.Equal(t, domain.RoleUser, captured.Messages[1].Role)
}

func TestComplete_StatusNormalization(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   llm.FailureKind
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, kind: llm.FailureUnauthenticated},
		{name: "forbidden", status: http.StatusForbidden, kind: llm.FailureUnauthenticated},
		{name: "rate limited", status: http.StatusTooManyRequests, kind: llm.FailureRateLimited},
		{name: "server error", status: http.StatusInternalServerError, kind: llm.FailureUnavailable},
		{name: "bad gateway", status: http.StatusBadGateway, kind: llm.FailureUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := chatServer(t, tc.status, `{"error":{"message":"nope"}}`, nil)
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.Complete(context.Background(), llm.Request{SystemPrompt: "sys", UserMessage: "q"})

			var gwErr *llm.Error
			require.ErrorAs(t, err, &gwErr)
			require.Equal(t, tc.kind, gwErr.Kind)

			var statusErr *HTTPStatusError
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tc.status, statusErr.StatusCode)
		})
	}
}

func TestComplete_MalformedBody(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":`, nil)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Complete(context.Background(), llm.Request{SystemPrompt: "sys", UserMessage: "q"})

	var gwErr *llm.Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, llm.FailureInvalidResponse, gwErr.Kind)
}

func TestComplete_NoChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":[]}`, nil)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Complete(context.Background(), llm.Request{SystemPrompt: "sys", UserMessage: "q"})

	var gwErr *llm.Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, llm.FailureInvalidResponse, gwErr.Kind)
	require.Equal(t, "no_choices", gwErr.Reason)
}

func TestComplete_ConnectionRefused(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.Complete(context.Background(), llm.Request{SystemPrompt: "sys", UserMessage: "q"})

	var gwErr *llm.Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, llm.FailureUnavailable, gwErr.Kind)
}
