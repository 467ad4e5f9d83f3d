package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/flowcup/registration-api/internal/application/notify"
	"github.com/flowcup/registration-api/internal/domain"
)

// NotifyHandler forwards free-form front-end events to the admin channel.
// The front-end uses it as a fallback when a primary call fails end-to-end:
// the full payload is re-sent here so the operator still sees it.
type NotifyHandler struct {
	svc notify.Service
}

func NewNotifyHandler(svc notify.Service) *NotifyHandler {
	return &NotifyHandler{svc: svc}
}

func (h *NotifyHandler) Alert(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body = map[string]interface{}{}
	}
	alertType, _ := body["type"].(string)
	if alertType == "" {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingType})
		return
	}
	delete(body, "type")

	fields := make(map[string]string, len(body))
	for k, v := range body {
		if v == nil {
			continue
		}
		fields[k] = fmt.Sprint(v)
	}

	err := h.svc.Alert(r.Context(), alertType, fields)
	if errors.Is(err, domain.ErrBadRequest) {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingType})
		return
	}
	// Delivery failure is reported in-band; the caller decides whether to
	// retry through another path.
	writeJSON(w, http.StatusOK, okEnvelope{OK: err == nil})
}
