package passwords

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hashing modes selectable from configuration.
const (
	ModePlaintext = "plaintext"
	ModeBcrypt    = "bcrypt"
)

// BcryptCost is the work factor used for bcrypt hashing.
const BcryptCost = 12

// Hasher turns a plaintext password into its stored form and verifies a
// login attempt against a stored value.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) bool
}

// Plaintext stores passwords as-is. This matches the historical on-disk
// format and remains the default for compatibility with existing database
// files. It is a known security defect, not a design choice; switch to
// bcrypt via configuration when a fresh database is acceptable.
type Plaintext struct{}

func (Plaintext) Hash(password string) (string, error) {
	return password, nil
}

func (Plaintext) Compare(stored, password string) bool {
	return stored == password
}

// Bcrypt stores bcrypt hashes. Databases written in this mode are not
// readable by plaintext mode and vice versa.
type Bcrypt struct{}

func (Bcrypt) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (Bcrypt) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// ForMode returns the hasher for a configured mode name.
func ForMode(mode string) (Hasher, error) {
	switch mode {
	case "", ModePlaintext:
		return Plaintext{}, nil
	case ModeBcrypt:
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}
