package auth

import (
	"errors"

	"github.com/jaevor/go-nanoid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPassword is returned when password verification fails.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrPasswordTooShort is returned when the password is too short.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

const (
	// MinPasswordLength is the minimum allowed password length.
	MinPasswordLength = 8
	// bcryptCost is the cost factor for bcrypt hashing.
	bcryptCost = 12

	tempPasswordLength = 12
)

// PasswordHasher handles password hashing and verification.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a new PasswordHasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost: bcryptCost,
	}
}

// Hash hashes the given password using bcrypt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// Verify verifies the given password against the hash.
func (h *PasswordHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// newTempPasswordGenerator returns a generator for one-time passwords handed
// to freshly provisioned customers. Uses an unambiguous alphabet so the
// password survives being read out over the phone.
func newTempPasswordGenerator() (func() string, error) {
	return nanoid.CustomASCII("23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ", tempPasswordLength)
}
