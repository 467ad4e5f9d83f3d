package handler

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/flowcup/registration-api/internal/application/verification"
	"github.com/flowcup/registration-api/internal/domain"
	"github.com/flowcup/registration-api/internal/pkg/validate"
)

// VerificationHandler handles the public SEND/CHECK code endpoints.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

type requestIDCodeBody struct {
	AccessCode string `json:"accessCode" validate:"required"`
	IngameID   string `json:"ingameId" validate:"required"`
	Email      string `json:"email" validate:"required"`
}

type requestEmailCodeBody struct {
	AccessCode string `json:"accessCode" validate:"required"`
	Email      string `json:"email" validate:"required"`
	IngameID   string `json:"ingameId"`
}

type verifyIDCodeBody struct {
	AccessCode string `json:"accessCode" validate:"required"`
	IngameID   string `json:"ingameId" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Code       string `json:"code" validate:"required"`
}

type verifyEmailCodeBody struct {
	AccessCode string `json:"accessCode" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Code       string `json:"code" validate:"required"`
}

func (h *VerificationHandler) RequestIDCode(w http.ResponseWriter, r *http.Request) {
	var body requestIDCodeBody
	if err := decodeTrimmed(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	id, err := h.svc.RequestCode(r.Context(), domain.ClassID, verification.CodeRequest{
		AccessCode: body.AccessCode,
		IngameID:   body.IngameID,
		Email:      body.Email,
	})
	if err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true, ID: id})
}

func (h *VerificationHandler) RequestEmailCode(w http.ResponseWriter, r *http.Request) {
	var body requestEmailCodeBody
	if err := decodeTrimmed(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, okEnvelope{Error: errMissingFields})
		return
	}
	id, err := h.svc.RequestCode(r.Context(), domain.ClassEmail, verification.CodeRequest{
		AccessCode: body.AccessCode,
		IngameID:   body.IngameID,
		Email:      body.Email,
	})
	if err != nil {
		writeOKError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okEnvelope{OK: true, ID: id})
}

func (h *VerificationHandler) VerifyIDCode(w http.ResponseWriter, r *http.Request) {
	var body verifyIDCodeBody
	if err := decodeTrimmed(r, &body); err != nil {
		writeVerifyMissing(w)
		return
	}
	h.check(w, r, domain.ClassID, verification.CodeCheck{
		AccessCode: body.AccessCode,
		IngameID:   body.IngameID,
		Email:      body.Email,
		Code:       body.Code,
	})
}

func (h *VerificationHandler) VerifyEmailCode(w http.ResponseWriter, r *http.Request) {
	var body verifyEmailCodeBody
	if err := decodeTrimmed(r, &body); err != nil {
		writeVerifyMissing(w)
		return
	}
	h.check(w, r, domain.ClassEmail, verification.CodeCheck{
		AccessCode: body.AccessCode,
		Email:      body.Email,
		Code:       body.Code,
	})
}

func (h *VerificationHandler) check(w http.ResponseWriter, r *http.Request, class domain.VerificationClass, req verification.CodeCheck) {
	status, err := h.svc.CheckCode(r.Context(), class, req)
	if err != nil {
		writeVerifyMissing(w)
		return
	}
	writeJSON(w, http.StatusOK, statusEnvelope{Status: string(status)})
}

// The verify endpoints report validation failure inside the status field so
// the front-end state machine has a single discriminator.
func writeVerifyMissing(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, statusEnvelope{
		Status: string(domain.VerificationInvalid),
		Error:  errMissingFields,
	})
}

// decodeTrimmed decodes the JSON body into dst, trims every string field
// in place and validates the struct tags. Fields that are only whitespace
// count as missing.
func decodeTrimmed(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	trimStrings(dst)
	return validate.Struct(dst)
}

// trimStrings trims every string field of the struct dst points to.
func trimStrings(dst interface{}) {
	v := reflect.ValueOf(dst).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f := v.Field(i); f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
