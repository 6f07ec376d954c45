package identity

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a digest of a random throwaway value. Login burns a compare
// against it when the email does not resolve to a user, so the missing-user
// and wrong-password branches cost the same.
const dummyHash = "$2a$14$N4v1zWLH3mPNYJeIGOKDLuKjZdRyiaGHsvCdFmDZw8yXPtDiCCm5u"

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password. Malformed digests report a
// mismatch rather than a distinct error.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		if errors.Is(err, bcrypt.ErrHashTooShort) {
			return ErrMismatchedHashAndPassword
		}
		var cost bcrypt.InvalidCostError
		var prefix bcrypt.InvalidHashPrefixError
		if errors.As(err, &cost) || errors.As(err, &prefix) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// DummyCompare runs a bcrypt verification that always fails, in the same
// cost class as a real comparison.
func DummyCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}

type bcryptHasher struct{}

// NewPasswordHasher returns the bcrypt-backed PasswordHasher
func NewPasswordHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (bcryptHasher) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}
