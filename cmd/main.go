package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/philippgille/chromem-go"
	"github.com/rs/cors"

	"legal-chatbot/handler"
	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/integrations/ollama"
	"legal-chatbot/internal/integrations/openai"
	"legal-chatbot/internal/llm"
	"legal-chatbot/internal/repository"
	"legal-chatbot/internal/retrieval"
	"legal-chatbot/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	port := envStr("PORT", "8080")
	allowedOrigins := splitList(envStr("ALLOWED_ORIGINS", "http://localhost:3000"))
	provider := strings.ToLower(mustEnv("LLM_PROVIDER")) // openai | groq | ollama
	maxDocuments := envInt("MAX_DOCUMENTS", 4)
	excerptBudget := envInt("EXCERPT_CHAR_BUDGET", 600)
	promptBudget := envInt("PROMPT_CHAR_BUDGET", 6000)
	timeout := time.Duration(envInt("REQUEST_TIMEOUT_SECONDS", 30)) * time.Second
	retryEnabled := envBool("LLM_RETRY", true)
	useEmbeddings := envBool("EMBEDDING_SCORER", false)

	// ---- Document store ----
	store, err := repository.NewFromSeed()
	if err != nil {
		slog.Error("failed to load document corpus", "err", err)
		os.Exit(1)
	}

	// ---- LLM backend (exactly one per process, misconfiguration fails here) ----
	backend, err := buildBackend(provider)
	if err != nil {
		slog.Error("failed to configure LLM backend", "err", err)
		os.Exit(1)
	}
	gateway, err := llm.NewGateway(backend, llm.WithTimeout(timeout), llm.WithRetry(retryEnabled))
	if err != nil {
		slog.Error("failed to create LLM gateway", "err", err)
		os.Exit(1)
	}

	// ---- Retrieval ----
	scorer, err := buildScorer(ctx, useEmbeddings, store)
	if err != nil {
		slog.Error("failed to configure relevance scorer", "err", err)
		os.Exit(1)
	}
	selector, err := retrieval.NewSelector(scorer)
	if err != nil {
		slog.Error("failed to create selector", "err", err)
		os.Exit(1)
	}

	// ---- Pipeline + HTTP host ----
	composer := usecase.NewPromptComposer(excerptBudget, promptBudget)
	svc, err := usecase.NewAnswerService(store, selector, composer, gateway, maxDocuments, slog.Default())
	if err != nil {
		slog.Error("failed to create answer service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(svc, slog.Default())
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	router := mux.NewRouter()
	router.Use(handler.InstrumentHTTP)
	h.Register(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := ":" + strings.TrimPrefix(port, ":")
	slog.Info("legal chatbot listening", "addr", addr, "provider", backend.Name())
	if err := http.ListenAndServe(addr, c.Handler(router)); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// buildBackend creates the single active completion backend. A provider with
// a missing credential is a startup failure, not a first-request failure.
func buildBackend(provider string) (llm.Backend, error) {
	switch provider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errors.New("OPENAI_API_KEY must be set for the openai provider")
		}
		var opts []openai.Option
		if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
			opts = append(opts, openai.WithBaseURL(base))
		}
		return openai.NewClient("openai", key, envStr("LLM_MODEL", "gpt-4o-mini"), opts...)
	case "groq":
		key := os.Getenv("GROQ_API_KEY")
		if key == "" {
			return nil, errors.New("GROQ_API_KEY must be set for the groq provider")
		}
		return openai.NewClient("groq", key, envStr("LLM_MODEL", "llama-3.3-70b-versatile"),
			openai.WithBaseURL(envStr("GROQ_BASE_URL", "https://api.groq.com/openai/v1")))
	case "ollama":
		return ollama.NewClient(envStr("OLLAMA_BASE_URL", "http://localhost:11434"), envStr("LLM_MODEL", "llama3"))
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (expected openai, groq or ollama)", provider)
	}
}

// buildScorer picks the relevance strategy. The embedding scorer primes the
// whole corpus up front so request-path scoring only embeds the question.
func buildScorer(ctx context.Context, useEmbeddings bool, store *repository.Store) (retrieval.Scorer, error) {
	if !useEmbeddings {
		return retrieval.NewLexicalScorer(), nil
	}
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("EMBEDDING_SCORER requires OPENAI_API_KEY")
	}
	scorer, err := retrieval.NewEmbeddingScorer(chromem.NewEmbeddingFuncOpenAI(key, chromem.EmbeddingModelOpenAI3Small))
	if err != nil {
		return nil, err
	}
	for _, lang := range []domain.Language{domain.LanguageEnglish, domain.LanguageMacedonian} {
		if err := scorer.Prime(ctx, store.FindByLanguage(lang)); err != nil {
			return nil, err
		}
	}
	return scorer, nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
