package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	hash, err := hasher.Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Error("Hash() returned the plaintext password")
	}

	if err := hasher.Verify("correct-horse-battery", hash); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
	if err := hasher.Verify("wrong-password", hash); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Verify() with wrong password error = %v, want ErrInvalidPassword", err)
	}
}

func TestPasswordHasher_TooShort(t *testing.T) {
	hasher := NewPasswordHasher()

	if _, err := hasher.Hash("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("Hash() error = %v, want ErrPasswordTooShort", err)
	}
}

func TestPasswordHasher_DistinctHashes(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same-password-123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same-password-123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// bcrypt salts per call.
	if first == second {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestNewTempPasswordGenerator(t *testing.T) {
	generate, err := newTempPasswordGenerator()
	if err != nil {
		t.Fatalf("newTempPasswordGenerator() error = %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		password := generate()
		if len(password) != tempPasswordLength {
			t.Fatalf("generated password length = %d, want %d", len(password), tempPasswordLength)
		}
		// The alphabet skips lookalike characters.
		for _, forbidden := range []string{"0", "1", "o", "O", "l", "I", "L", "i"} {
			if strings.Contains(password, forbidden) {
				t.Fatalf("generated password %q contains ambiguous character %q", password, forbidden)
			}
		}
		seen[password] = true
	}

	if len(seen) < 50 {
		t.Errorf("expected 50 unique passwords, got %d", len(seen))
	}
}
