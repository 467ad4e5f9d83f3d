package handler

import (
	"net/http"

	"github.com/flowcup/registration-api/internal/application/registration"
	"github.com/go-chi/chi/v5"
)

// RegistrationHandler handles the final submission and status polling.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

type submitRegistrationBody struct {
	AccessCode string `json:"accessCode" validate:"required"`
	IngameID   string `json:"ingameId" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password"`
	IDCode     string `json:"idCode"`
	EmailCode  string `json:"emailCode"`
}

func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitRegistrationBody
	if err := decodeTrimmed(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	id, err := h.svc.Submit(r.Context(), registration.SubmitRequest{
		AccessCode: body.AccessCode,
		IngameID:   body.IngameID,
		Email:      body.Email,
		Password:   body.Password,
		IDCode:     body.IDCode,
		EmailCode:  body.EmailCode,
	})
	if err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true, ID: id})
}

func (h *RegistrationHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, statusEnvelope{Status: errNotFound})
		return
	}
	writeJSON(w, http.StatusOK, statusEnvelope{Status: string(status)})
}
