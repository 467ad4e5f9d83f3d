package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flowcup/registration-api/internal/domain"
)

// Wire error codes shared with the front-end.
const (
	errMissingFields = "missing_fields"
	errMissingType   = "missing_type"
	errNotFound      = "not_found"
	errServer        = "server_error"
)

// okEnvelope is the {ok, ...} response wrapper used by the request/submit
// endpoints and the whole admin API.
type okEnvelope struct {
	OK    bool   `json:"ok"`
	ID    string `json:"id,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// statusEnvelope is the {status} wrapper used by the verify and
// check-status endpoints.
type statusEnvelope struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// stateEnvelope is the full admin snapshot. Field names are part of the
// admin panel's contract.
type stateEnvelope struct {
	IDCodeRequests    []domain.VerificationRequest `json:"idCodeRequests"`
	EmailCodeRequests []domain.VerificationRequest `json:"emailCodeRequests"`
	Registrations     []domain.Registration        `json:"registrations"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeOKError maps a service error onto the {ok:false, error} shape.
func writeOKError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, okEnvelope{Error: errNotFound})
	default:
		writeJSON(w, http.StatusInternalServerError, okEnvelope{Error: errServer})
	}
}
