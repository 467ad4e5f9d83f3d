package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flowcup/registration-api/internal/domain"
	pkgcode "github.com/flowcup/registration-api/internal/pkg/code"
)

// Policy selects who decides whether a submitted code is valid.
type Policy string

const (
	// PolicyAdmin trusts a human: the server stores whatever the player
	// typed and only reflects the operator's mark-valid/mark-invalid
	// decision back to the client.
	PolicyAdmin Policy = "admin"
	// PolicyServer trusts a generated secret: the server compares the
	// submitted code against the one issued via GenerateCode.
	PolicyServer Policy = "server"
)

// Repository is the store the service needs. Upserts happen through
// FindByKey + Put; Put assigns an id to records that lack one.
type Repository interface {
	FindByKey(ctx context.Context, class domain.VerificationClass, accessCode, identifier string) (*domain.VerificationRequest, error)
	FindByID(ctx context.Context, class domain.VerificationClass, id string) (*domain.VerificationRequest, error)
	Put(ctx context.Context, v *domain.VerificationRequest) error
	List(ctx context.Context, class domain.VerificationClass) ([]domain.VerificationRequest, error)
}

// CodeRequest is a "send me a code" call for one identifier.
type CodeRequest struct {
	AccessCode string
	IngameID   string
	Email      string
}

// CodeCheck is a "here is my code" call.
type CodeCheck struct {
	AccessCode string
	IngameID   string
	Email      string
	Code       string
}

type Service interface {
	// RequestCode upserts the record for the request's key and returns its
	// id. Existing records keep their status and last code; only auxiliary
	// fields are refreshed.
	RequestCode(ctx context.Context, class domain.VerificationClass, req CodeRequest) (string, error)
	// CheckCode resolves a submitted code according to the configured
	// policy and returns the status the client should display.
	CheckCode(ctx context.Context, class domain.VerificationClass, req CodeCheck) (domain.VerificationStatus, error)
	// GenerateCode issues a fresh 6-digit code for the record and moves it
	// to code_sent. Under PolicyServer the issued code is the comparison
	// secret; under PolicyAdmin it is reference material for the operator.
	GenerateCode(ctx context.Context, class domain.VerificationClass, id string) (string, error)
	// SetStatus records the operator's decision. Only the terminal
	// statuses are accepted.
	SetStatus(ctx context.Context, class domain.VerificationClass, id string, status domain.VerificationStatus) error
	List(ctx context.Context, class domain.VerificationClass) ([]domain.VerificationRequest, error)
}

type service struct {
	repo   Repository
	policy Policy
	now    func() time.Time
}

func NewService(repo Repository, policy Policy) Service {
	return &service{repo: repo, policy: policy, now: time.Now}
}

func (s *service) RequestCode(ctx context.Context, class domain.VerificationClass, req CodeRequest) (string, error) {
	req.AccessCode = strings.TrimSpace(req.AccessCode)
	req.IngameID = strings.TrimSpace(req.IngameID)
	req.Email = strings.TrimSpace(req.Email)
	if err := requireFields(class, req.AccessCode, req.IngameID, req.Email); err != nil {
		return "", err
	}

	rec, err := s.repo.FindByKey(ctx, class, req.AccessCode, identifier(class, req))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		rec = &domain.VerificationRequest{
			Class:      class,
			AccessCode: req.AccessCode,
			IngameID:   req.IngameID,
			Email:      req.Email,
			Status:     domain.VerificationPending,
			CreatedAt:  s.now().UTC(),
		}
	case err != nil:
		return "", err
	default:
		// Refresh auxiliary fields only. Status and the last code belong to
		// the check/decision flow and survive repeated sends.
		rec.Email = req.Email
		if req.IngameID != "" {
			rec.IngameID = req.IngameID
		}
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", err
	}
	slog.Info("verification code requested", "class", class, "request_id", rec.ID, "status", rec.Status)
	return rec.ID, nil
}

func (s *service) CheckCode(ctx context.Context, class domain.VerificationClass, req CodeCheck) (domain.VerificationStatus, error) {
	req.AccessCode = strings.TrimSpace(req.AccessCode)
	req.IngameID = strings.TrimSpace(req.IngameID)
	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if err := requireFields(class, req.AccessCode, req.IngameID, req.Email); err != nil {
		return "", err
	}
	if req.Code == "" {
		return "", fmt.Errorf("code required: %w", domain.ErrBadRequest)
	}

	if s.policy == PolicyServer {
		return s.checkServer(ctx, class, req)
	}
	return s.checkAdmin(ctx, class, req)
}

// checkAdmin stores the player's input and echoes the operator's decision.
// The server never compares codes under this policy.
func (s *service) checkAdmin(ctx context.Context, class domain.VerificationClass, req CodeCheck) (domain.VerificationStatus, error) {
	now := s.now().UTC()
	rec, err := s.repo.FindByKey(ctx, class, req.AccessCode, identifier(class, CodeRequest{IngameID: req.IngameID, Email: req.Email}))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Check without a prior send: create the record on the fly.
		rec = &domain.VerificationRequest{
			Class:      class,
			AccessCode: req.AccessCode,
			IngameID:   req.IngameID,
			Email:      req.Email,
			Status:     domain.VerificationCodeSent,
			LastCode:   &req.Code,
			LastCodeAt: &now,
			CreatedAt:  now,
		}
	case err != nil:
		return "", err
	default:
		rec.LastCode = &req.Code
		rec.LastCodeAt = &now
		// A terminal decision stands; a new submission never downgrades it.
		if !rec.Status.Terminal() {
			rec.Status = domain.VerificationCodeSent
		}
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", err
	}
	if rec.Status.Terminal() {
		return rec.Status, nil
	}
	// The operator has not decided yet; the client shows "waiting".
	return domain.VerificationPending, nil
}

// checkServer compares the submission against the code issued via
// GenerateCode. Without an issued code there is nothing to compare, so the
// record is left untouched.
func (s *service) checkServer(ctx context.Context, class domain.VerificationClass, req CodeCheck) (domain.VerificationStatus, error) {
	rec, err := s.repo.FindByKey(ctx, class, req.AccessCode, identifier(class, CodeRequest{IngameID: req.IngameID, Email: req.Email}))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.VerificationPending, nil
	}
	if err != nil {
		return "", err
	}
	if rec.LastCode == nil {
		return domain.VerificationPending, nil
	}
	if *rec.LastCode == req.Code {
		rec.Status = domain.VerificationValid
	} else {
		rec.Status = domain.VerificationInvalid
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", err
	}
	return rec.Status, nil
}

func (s *service) GenerateCode(ctx context.Context, class domain.VerificationClass, id string) (string, error) {
	rec, err := s.repo.FindByID(ctx, class, id)
	if err != nil {
		return "", fmt.Errorf("verification request %s: %w", id, err)
	}
	c, err := pkgcode.New()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	rec.LastCode = &c
	rec.LastCodeAt = &now
	rec.Status = domain.VerificationCodeSent
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", err
	}
	slog.Info("verification code generated", "class", class, "request_id", id)
	return c, nil
}

func (s *service) SetStatus(ctx context.Context, class domain.VerificationClass, id string, status domain.VerificationStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("status %q is not an operator decision: %w", status, domain.ErrBadRequest)
	}
	rec, err := s.repo.FindByID(ctx, class, id)
	if err != nil {
		return fmt.Errorf("verification request %s: %w", id, err)
	}
	rec.Status = status
	if err := s.repo.Put(ctx, rec); err != nil {
		return err
	}
	slog.Info("verification decided", "class", class, "request_id", id, "status", status)
	return nil
}

func (s *service) List(ctx context.Context, class domain.VerificationClass) ([]domain.VerificationRequest, error) {
	return s.repo.List(ctx, class)
}

// identifier returns the key field for the class: the in-game ID for id
// checks, the email address for email checks.
func identifier(class domain.VerificationClass, req CodeRequest) string {
	if class == domain.ClassEmail {
		return req.Email
	}
	return req.IngameID
}

func requireFields(class domain.VerificationClass, accessCode, ingameID, email string) error {
	if accessCode == "" || email == "" {
		return fmt.Errorf("missing fields: %w", domain.ErrBadRequest)
	}
	if class == domain.ClassID && ingameID == "" {
		return fmt.Errorf("missing fields: %w", domain.ErrBadRequest)
	}
	return nil
}
