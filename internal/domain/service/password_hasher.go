// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// RandomSaltPosition asks the hasher to choose the salt position itself.
const RandomSaltPosition = -1

// PasswordHasher derives salted one-way digests from passwords.
type PasswordHasher interface {
	// Hash digests password with the salt at saltPosition, or with a randomly
	// chosen salt when saltPosition is RandomSaltPosition. It returns the
	// position actually used, which callers must store next to the digest.
	Hash(ctx context.Context, password string, saltPosition int) (int, []byte, error)

	// VerifyPassword recomputes the digest at saltPosition and compares it to digest.
	VerifyPassword(ctx context.Context, password string, digest []byte, saltPosition int) (bool, error)
}
