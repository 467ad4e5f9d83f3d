package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/flowcup/registration-api/internal/domain"
)

// Notifier delivers out-of-band alerts to the operator. Implementations are
// a one-way observer: they render state for a human and never write it back.
// Delivery is best-effort; callers on the public path must not fail a
// request on a delivery error.
type Notifier interface {
	// Alert sends a free-form text message.
	Alert(ctx context.Context, text string) error
	// RegistrationSubmitted announces a new application, including whatever
	// decision affordances the channel supports (the Telegram channel adds
	// advisory approve/reject buttons).
	RegistrationSubmitted(ctx context.Context, reg *domain.Registration) error
}

// Service formats and forwards the free-form /api/notify-admin alerts.
type Service interface {
	Alert(ctx context.Context, alertType string, fields map[string]string) error
}

type service struct {
	notifier Notifier
}

func NewService(notifier Notifier) Service {
	return &service{notifier: notifier}
}

// Alert renders "REQUEST: <type>" followed by one "KEY: value" line per
// non-empty field, keys upper-cased and sorted for a stable message.
func (s *service) Alert(ctx context.Context, alertType string, fields map[string]string) error {
	if strings.TrimSpace(alertType) == "" {
		return fmt.Errorf("alert type required: %w", domain.ErrBadRequest)
	}
	if s.notifier == nil {
		return fmt.Errorf("no notification channel configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "REQUEST: %s\n", alertType)
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n%s: %s", strings.ToUpper(k), fields[k])
	}
	return s.notifier.Alert(ctx, b.String())
}
