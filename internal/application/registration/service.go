package registration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flowcup/registration-api/internal/application/notify"
	"github.com/flowcup/registration-api/internal/domain"
	"github.com/flowcup/registration-api/internal/infrastructure/smtp"
	"github.com/flowcup/registration-api/internal/pkg/credential"
)

// Repository is the store the service needs for applications.
type Repository interface {
	Put(ctx context.Context, reg *domain.Registration) error
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
}

// VerificationReader is the read-only view of the verification store used to
// snapshot outcomes at submission time.
type VerificationReader interface {
	FindByKey(ctx context.Context, class domain.VerificationClass, accessCode, identifier string) (*domain.VerificationRequest, error)
}

// SubmitRequest carries the final application form.
type SubmitRequest struct {
	AccessCode string
	IngameID   string
	Email      string
	Password   string
	IDCode     string
	EmailCode  string
}

type Service interface {
	// Submit records the application with status=pending. Verification
	// outcomes are snapshotted, never gating: an unverified applicant is
	// accepted and flagged for the operator. The admin notification is
	// best-effort and can never fail the submission.
	Submit(ctx context.Context, req SubmitRequest) (string, error)
	// Approve and Decline are terminal operator decisions in intent, but
	// the last call wins; there is no transition guard.
	Approve(ctx context.Context, id, slot, link, note string) error
	Decline(ctx context.Context, id, reason, note string) error
	Status(ctx context.Context, id string) (domain.RegistrationStatus, error)
	List(ctx context.Context) ([]domain.Registration, error)
}

// ServiceDeps wires the service's collaborators. Notifier and Mailer are
// optional; nil disables the corresponding side channel.
type ServiceDeps struct {
	Registrations   Repository
	Verifications   VerificationReader
	Notifier        notify.Notifier
	Mailer          smtp.Mailer
	Credentials     credential.Sink
	RequirePassword bool
}

type service struct {
	registrations   Repository
	verifications   VerificationReader
	notifier        notify.Notifier
	mailer          smtp.Mailer
	credentials     credential.Sink
	requirePassword bool
	now             func() time.Time
}

func NewService(deps ServiceDeps) Service {
	sink := deps.Credentials
	if sink == nil {
		sink = credential.Verbatim{}
	}
	return &service{
		registrations:   deps.Registrations,
		verifications:   deps.Verifications,
		notifier:        deps.Notifier,
		mailer:          deps.Mailer,
		credentials:     sink,
		requirePassword: deps.RequirePassword,
		now:             time.Now,
	}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	req.AccessCode = strings.TrimSpace(req.AccessCode)
	req.IngameID = strings.TrimSpace(req.IngameID)
	req.Email = strings.TrimSpace(req.Email)
	if req.AccessCode == "" || req.IngameID == "" || req.Email == "" {
		return "", fmt.Errorf("missing fields: %w", domain.ErrBadRequest)
	}
	if s.requirePassword && strings.TrimSpace(req.Password) == "" {
		return "", fmt.Errorf("missing fields: %w", domain.ErrBadRequest)
	}

	// Snapshot the verification outcomes as of right now. Later operator
	// decisions on those records do not touch this registration.
	idVerified := s.verified(ctx, domain.ClassID, req.AccessCode, req.IngameID)
	emailVerified := s.verified(ctx, domain.ClassEmail, req.AccessCode, req.Email)

	reg := &domain.Registration{
		AccessCode:    req.AccessCode,
		IngameID:      req.IngameID,
		Email:         req.Email,
		IDCode:        optional(req.IDCode),
		EmailCode:     optional(req.EmailCode),
		IDVerified:    idVerified,
		EmailVerified: emailVerified,
		Status:        domain.RegistrationPending,
		CreatedAt:     s.now().UTC(),
	}
	if req.Password != "" {
		stored, err := s.credentials.Store(req.Password)
		if err != nil {
			return "", fmt.Errorf("store credential: %w", err)
		}
		reg.Password = &stored
	}

	if err := s.registrations.Put(ctx, reg); err != nil {
		return "", err
	}
	slog.Info("registration submitted",
		"registration_id", reg.ID,
		"id_verified", idVerified,
		"email_verified", emailVerified,
	)

	// The store write above is the authoritative record; a dead side
	// channel must not turn a recorded application into a user-facing
	// failure.
	if s.notifier != nil {
		if err := s.notifier.RegistrationSubmitted(ctx, reg); err != nil {
			slog.Warn("admin notification failed", "registration_id", reg.ID, "err", err)
		}
	}
	return reg.ID, nil
}

func (s *service) Approve(ctx context.Context, id, slot, link, note string) error {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("registration %s: %w", id, err)
	}
	reg.Status = domain.RegistrationApproved
	reg.Slot = optional(slot)
	reg.Link = optional(link)
	reg.AdminNote = optional(note)
	reg.DeclineReason = nil
	if err := s.registrations.Put(ctx, reg); err != nil {
		return err
	}
	slog.Info("registration approved", "registration_id", id, "slot", slot)

	body := "Your tournament registration has been approved."
	if slot != "" {
		body += "\nSlot: " + slot
	}
	if link != "" {
		body += "\nLink: " + link
	}
	s.sendDecisionEmail(reg.Email, "Registration approved", body)
	return nil
}

func (s *service) Decline(ctx context.Context, id, reason, note string) error {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("registration %s: %w", id, err)
	}
	if reason == "" {
		reason = domain.DeclineReasonOther
	}
	reg.Status = domain.RegistrationDeclined
	reg.DeclineReason = &reason
	reg.AdminNote = optional(note)
	if err := s.registrations.Put(ctx, reg); err != nil {
		return err
	}
	slog.Info("registration declined", "registration_id", id, "reason", reason)

	s.sendDecisionEmail(reg.Email, "Registration declined",
		"Your tournament registration has been declined. Reason: "+reason)
	return nil
}

func (s *service) Status(ctx context.Context, id string) (domain.RegistrationStatus, error) {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("registration %s: %w", id, err)
	}
	return reg.Status, nil
}

func (s *service) List(ctx context.Context) ([]domain.Registration, error) {
	return s.registrations.List(ctx)
}

func (s *service) verified(ctx context.Context, class domain.VerificationClass, accessCode, id string) bool {
	rec, err := s.verifications.FindByKey(ctx, class, accessCode, id)
	return err == nil && rec.Status == domain.VerificationValid
}

// sendDecisionEmail is best-effort: decisions are recorded regardless of
// whether the applicant could be told about them.
func (s *service) sendDecisionEmail(to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendEmail(to, subject, body); err != nil {
		slog.Warn("decision email failed", "to", to, "err", err)
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
