package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher abstracts the password hashing scheme so it can be upgraded via
// configuration without touching the credential code.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) bool
}

// NewHasher returns the hasher selected by the AUTH_PASSWORD_HASH setting.
func NewHasher(algorithm string) (Hasher, error) {
	switch algorithm {
	case "", "sha256":
		return SHA256Hasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
}

// SHA256Hasher stores a plain hex digest. It is the legacy scheme the existing
// user records were written with.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256Hasher) Compare(hashedPassword, password string) bool {
	sum := sha256.Sum256([]byte(password))
	return hashedPassword == hex.EncodeToString(sum[:])
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash password: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
