package server

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"chatboard/domain"
	"chatboard/errors"
	"chatboard/services"
)

type MessageHandler struct {
	service services.IMessageService
	log     *slog.Logger
}

func NewMessageHandler(service services.IMessageService, log *slog.Logger) *MessageHandler {
	return &MessageHandler{service: service, log: log}
}

type createMessageRequest struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

func (h *MessageHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMessages returns the full board, newest first. Failures never
// leak partial results: either the whole list or a structured error.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		h.log.Error("Fetching messages failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to fetch messages",
			"details": err.Error(),
		})
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Message{"messages": messages})
}

// CreateMessage validates and persists one message, echoing it back.
// Field violations are client-correctable (400); everything else is a
// store or serialization failure (500 with details).
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and text are required"})
		return
	}

	message, err := h.service.CreateMessage(r.Context(), req.Username, req.Text)
	switch {
	case stderrors.Is(err, errors.ErrEmptyUsername) || stderrors.Is(err, errors.ErrEmptyText):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and text are required"})
	case err != nil:
		h.log.Error("Posting message failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to post message",
			"details": err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]domain.Message{"message": message})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
