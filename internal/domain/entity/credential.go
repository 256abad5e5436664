package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential is a stored password digest together with the salt position
// that produced it. Verification must reuse SaltPosition.
type Credential struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Digest       []byte
	SaltPosition int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HashResult is the output of a single hash operation.
type HashResult struct {
	SaltPosition int
	Digest       []byte
}
