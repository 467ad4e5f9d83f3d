package memstore

import (
	"strconv"
	"sync"

	"github.com/flowcup/registration-api/internal/domain"
)

// Store is the default volatile backend. All collections live in process
// memory and reset on restart; consumers expecting durability must use the
// DynamoDB backend instead.
//
// A single sequence feeds ids for every collection, so ids are unique across
// the whole store ("1", "2", ...). Insertion order is preserved because the
// admin surface renders the collections as-is.
type Store struct {
	mu            sync.RWMutex
	seq           int64
	verifications []*domain.VerificationRequest
	registrations []*domain.Registration
}

func New() *Store {
	return &Store{}
}

// Verifications returns the verification-request repository view.
func (s *Store) Verifications() *VerificationRepo { return &VerificationRepo{s: s} }

// Registrations returns the registration repository view.
func (s *Store) Registrations() *RegistrationRepo { return &RegistrationRepo{s: s} }

// nextID must be called with the write lock held.
func (s *Store) nextID() string {
	s.seq++
	return strconv.FormatInt(s.seq, 10)
}
