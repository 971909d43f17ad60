// Package password is the one-way vault for principal secrets. Digests are
// self-describing bcrypt strings carrying their own salt and work factor, so
// verification needs no side-channel state.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor the account store was seeded with.
const Cost = 10

var (
	// ErrMismatch means the secret does not match the digest.
	ErrMismatch = errors.New("password mismatch")

	// ErrMalformedDigest means the digest is not a decodable bcrypt string.
	ErrMalformedDigest = errors.New("malformed password digest")
)

// Hash applies a salted, slow one-way transform to the secret.
func Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify recomputes the digest using the salt and cost embedded in it and
// compares in constant time. A mismatch returns ErrMismatch; a digest that
// cannot be decoded returns ErrMalformedDigest.
func Verify(secret, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("%w: %v", ErrMalformedDigest, err)
}
