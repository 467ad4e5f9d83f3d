package memstore

import (
	"context"

	"github.com/flowcup/registration-api/internal/domain"
)

// RegistrationRepo stores submitted applications in memory. Semantics match
// VerificationRepo: copies out, last write wins, ids from the shared
// sequence.
type RegistrationRepo struct {
	s *Store
}

func (r *RegistrationRepo) FindByID(_ context.Context, id string) (*domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, reg := range r.s.registrations {
		if reg.ID == id {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *RegistrationRepo) Put(_ context.Context, reg *domain.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if reg.ID == "" {
		reg.ID = r.s.nextID()
	}
	cp := *reg
	for i, existing := range r.s.registrations {
		if existing.ID == reg.ID {
			r.s.registrations[i] = &cp
			return nil
		}
	}
	r.s.registrations = append(r.s.registrations, &cp)
	return nil
}

func (r *RegistrationRepo) List(_ context.Context) ([]domain.Registration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Registration, 0, len(r.s.registrations))
	for _, reg := range r.s.registrations {
		out = append(out, *reg)
	}
	return out, nil
}
