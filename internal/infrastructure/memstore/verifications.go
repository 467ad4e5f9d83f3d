package memstore

import (
	"context"

	"github.com/flowcup/registration-api/internal/domain"
)

// VerificationRepo stores verification requests in memory. Find and List
// return copies; mutations only take effect through Put. Writes are
// last-write-wins, which is acceptable for a single-operator deployment.
type VerificationRepo struct {
	s *Store
}

func (r *VerificationRepo) FindByKey(_ context.Context, class domain.VerificationClass, accessCode, identifier string) (*domain.VerificationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.verifications {
		if v.Class == class && v.AccessCode == accessCode && v.Identifier() == identifier {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *VerificationRepo) FindByID(_ context.Context, class domain.VerificationClass, id string) (*domain.VerificationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.verifications {
		if v.Class == class && v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Put inserts or replaces a record. A record with an empty ID is assigned
// the next sequence id.
func (r *VerificationRepo) Put(_ context.Context, v *domain.VerificationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v.ID == "" {
		v.ID = r.s.nextID()
	}
	cp := *v
	for i, existing := range r.s.verifications {
		if existing.Class == v.Class && existing.ID == v.ID {
			r.s.verifications[i] = &cp
			return nil
		}
	}
	r.s.verifications = append(r.s.verifications, &cp)
	return nil
}

func (r *VerificationRepo) List(_ context.Context, class domain.VerificationClass) ([]domain.VerificationRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.VerificationRequest, 0)
	for _, v := range r.s.verifications {
		if v.Class == class {
			out = append(out, *v)
		}
	}
	return out, nil
}
