package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"legal-chatbot/internal/domain"
	"legal-chatbot/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// UseCase is the answer pipeline consumed by the HTTP layer.
type UseCase interface {
	Answer(ctx context.Context, in usecase.AnswerInput) (usecase.AnswerOutput, error)
}

// chatRequest matches the body the frontend sends.
type chatRequest struct {
	Message  string `json:"Message"`
	Language string `json:"Language"`
}

type chatResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handler serves the chat API.
type Handler struct {
	uc     UseCase
	logger *slog.Logger
}

// NewHandler creates a Handler around the given use case.
func NewHandler(uc UseCase, logger *slog.Logger) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: usecase must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{uc: uc, logger: logger}, nil
}

// Register wires the API routes onto the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/chat", h.Chat).Methods(http.MethodPost)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/swagger/v1/swagger.json", h.OpenAPI).Methods(http.MethodGet)
	r.Handle("/metrics", Metrics()).Methods(http.MethodGet)
}

// Chat handles a single question/answer exchange.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	correlationID := r.Header.Get(correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	w.Header().Set(correlationHeader, correlationID)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(usecase.ErrorInvalidInput),
			Message: "request body must be valid JSON",
		})
		return
	}

	out, err := h.uc.Answer(r.Context(), usecase.AnswerInput{
		Message:  req.Message,
		Language: domain.Language(req.Language),
	})
	if err != nil {
		status, code, msg := mapError(err)
		h.logger.Error("chat request failed", "err", err, "code", code, "correlation_id", correlationID)
		writeJSON(w, status, errorResponse{Error: code, Message: msg})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Message: out.Answer})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// mapError translates usecase failures into an HTTP status, error code and a
// user-presentable message, so the UI can distinguish "try again" from
// "service unavailable".
func mapError(err error) (int, string, string) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, string(usecase.ErrorInternal), "something went wrong, please try again"
	}
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, string(ucErr.Code), "please provide a non-empty message"
	case usecase.ErrorUpstreamRateLimited:
		return http.StatusTooManyRequests, string(ucErr.Code), "the assistant is busy, please try again shortly"
	case usecase.ErrorUpstreamUnauthenticated, usecase.ErrorUpstreamUnavailable, usecase.ErrorUpstreamInvalidResponse:
		return http.StatusBadGateway, string(ucErr.Code), "the assistant is currently unavailable, please try again later"
	default:
		return http.StatusInternalServerError, string(ucErr.Code), "something went wrong, please try again"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
