package handler

import (
	"encoding/json"
	"net/http"

	"github.com/flowcup/registration-api/internal/application/registration"
	"github.com/flowcup/registration-api/internal/application/verification"
	"github.com/flowcup/registration-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// AdminHandler is the programmatic admin surface: the only place state is
// mutated by an operator. It performs existence checks and nothing else;
// decisions are taken as authoritative.
type AdminHandler struct {
	verifications verification.Service
	registrations registration.Service
}

func NewAdminHandler(verifications verification.Service, registrations registration.Service) *AdminHandler {
	return &AdminHandler{verifications: verifications, registrations: registrations}
}

// State renders the entire store contents for the admin panel. No
// pagination: the collections hold one entry per invited player.
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	idReqs, err := h.verifications.List(r.Context(), domain.ClassID)
	if err != nil {
		writeOKError(w, err)
		return
	}
	emailReqs, err := h.verifications.List(r.Context(), domain.ClassEmail)
	if err != nil {
		writeOKError(w, err)
		return
	}
	regs, err := h.registrations.List(r.Context())
	if err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateEnvelope{
		IDCodeRequests:    idReqs,
		EmailCodeRequests: emailReqs,
		Registrations:     regs,
	})
}

type adminIDBody struct {
	ID string `json:"id"`
}

func (h *AdminHandler) IDCodeAction(w http.ResponseWriter, r *http.Request) {
	h.verificationAction(w, r, domain.ClassID)
}

func (h *AdminHandler) EmailCodeAction(w http.ResponseWriter, r *http.Request) {
	h.verificationAction(w, r, domain.ClassEmail)
}

func (h *AdminHandler) verificationAction(w http.ResponseWriter, r *http.Request, class domain.VerificationClass) {
	var body adminIDBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	switch chi.URLParam(r, "action") {
	case "mark-valid":
		h.setStatus(w, r, class, body.ID, domain.VerificationValid)
	case "mark-invalid":
		h.setStatus(w, r, class, body.ID, domain.VerificationInvalid)
	case "generate":
		code, err := h.verifications.GenerateCode(r.Context(), class, body.ID)
		if err != nil {
			writeOKError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okEnvelope{OK: true, Code: code})
	default:
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: "unknown_action"})
	}
}

func (h *AdminHandler) setStatus(w http.ResponseWriter, r *http.Request, class domain.VerificationClass, id string, status domain.VerificationStatus) {
	if err := h.verifications.SetStatus(r.Context(), class, id, status); err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true})
}

type approveBody struct {
	ID   string `json:"id"`
	Slot string `json:"slot"`
	Link string `json:"link"`
	Note string `json:"note"`
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var body approveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	if err := h.registrations.Approve(r.Context(), body.ID, body.Slot, body.Link, body.Note); err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true})
}

type declineBody struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

func (h *AdminHandler) Decline(w http.ResponseWriter, r *http.Request) {
	var body declineBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	if err := h.registrations.Decline(r.Context(), body.ID, body.Reason, body.Note); err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true})
}
