package credential

import "golang.org/x/crypto/bcrypt"

// Sink prepares a submitted password for storage. The registration store
// keeps whatever the sink returns; it never sees the raw input otherwise.
type Sink interface {
	Store(plaintext string) (string, error)
}

// Verbatim stores the password unchanged. This matches the original
// deployment; the stored value is still treated as unsafe to log.
type Verbatim struct{}

func (Verbatim) Store(plaintext string) (string, error) { return plaintext, nil }

// Bcrypt hashes the password at the boundary so the stores only ever hold
// a hash.
type Bcrypt struct{}

func (Bcrypt) Store(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
