package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/flowcup/registration-api/internal/application/registration"
)

// CallbackAnswerer acknowledges a chat inline-button press.
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// WebhookHandler receives Telegram updates for the admin bot.
//
// The chat buttons are advisory only: pressing one acknowledges the press
// and reports the registration's current status, but never mutates it.
// Recording a decision goes through /admin/api, and nothing here may
// shortcut that.
type WebhookHandler struct {
	registrations registration.Service
	answerer      CallbackAnswerer // nil when no Telegram channel is configured
}

func NewWebhookHandler(registrations registration.Service, answerer CallbackAnswerer) *WebhookHandler {
	return &WebhookHandler{registrations: registrations, answerer: answerer}
}

type telegramUpdate struct {
	CallbackQuery *struct {
		ID   string `json:"id"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var update telegramUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || update.CallbackQuery == nil {
		writeJSON(w, http.StatusOK, okEnvelope{OK: true})
		return
	}

	msg := "Unknown action."
	if action, uid, found := strings.Cut(update.CallbackQuery.Data, ":"); found {
		switch action {
		case "approve", "reject":
			if status, err := h.registrations.Status(r.Context(), uid); err != nil {
				msg = "UID not found."
			} else {
				msg = fmt.Sprintf("Noted for %s (currently %s). Record the decision in the admin panel.", uid, status)
			}
		}
	}

	if h.answerer != nil {
		if err := h.answerer.AnswerCallback(r.Context(), update.CallbackQuery.ID, msg); err != nil {
			slog.Warn("answer callback failed", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true})
}
