// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"math/big"
	mathrand "math/rand/v2"
	"strconv"
	"strings"

	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/domain/service"
	"checker/internal/errors"
)

// MinSaltItemsCount is the exclusive lower bound for the configured number of salts.
const MinSaltItemsCount = 20

// RandomSource picks integers in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// cryptoSource draws from crypto/rand and is safe for concurrent use.
type cryptoSource struct{}

func (cryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return mathrand.IntN(n)
	}

	return int(v.Int64())
}

// saltedHasher digests SHA-256(password || salt) where salt is one line of the salt store.
type saltedHasher struct {
	store          repository.SaltStore
	saltItemsCount int
	random         RandomSource
}

// SaltedHasherOption configures the salted hasher.
type SaltedHasherOption func(*saltedHasher)

// WithRandomSource replaces the source used to pick salt positions.
// The source must be safe for concurrent use if the hasher is shared.
func WithRandomSource(src RandomSource) SaltedHasherOption {
	return func(h *saltedHasher) {
		h.random = src
	}
}

// NewSaltedHasher returns a PasswordHasher reading salts from store.
// saltItemsCount must exceed MinSaltItemsCount.
func NewSaltedHasher(store repository.SaltStore, saltItemsCount int, opts ...SaltedHasherOption) (service.PasswordHasher, error) {
	if store == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt store is required"))
	}
	if saltItemsCount <= MinSaltItemsCount {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails(
			"salt items count must be greater than " + strconv.Itoa(MinSaltItemsCount)))
	}

	h := &saltedHasher{
		store:          store,
		saltItemsCount: saltItemsCount,
		random:         cryptoSource{},
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Hash implements service.PasswordHasher.
func (h *saltedHasher) Hash(ctx context.Context, password string, saltPosition int) (int, []byte, error) {
	if isBlank(password) {
		return 0, nil, errors.WithStack(domainerrors.ErrInvalidCredential)
	}

	position, salt, err := h.readSalt(ctx, saltPosition)
	if err != nil {
		return 0, nil, err
	}

	// Invalid UTF-8 is replaced the same way a UTF-8 encoder would.
	pw := strings.ToValidUTF8(password, "\uFFFD")

	payload := make([]byte, 0, len(pw)+len(salt))
	payload = append(payload, pw...)
	payload = append(payload, salt...)
	sum := sha256.Sum256(payload)

	return position, sum[:], nil
}

// VerifyPassword implements service.PasswordHasher.
func (h *saltedHasher) VerifyPassword(ctx context.Context, password string, digest []byte, saltPosition int) (bool, error) {
	if isBlank(password) {
		return false, errors.WithStack(domainerrors.ErrInvalidCredential)
	}
	if len(digest) == 0 {
		return false, errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails("digest must not be empty"))
	}

	_, computed, err := h.Hash(ctx, password, saltPosition)
	if err != nil {
		return false, err
	}

	if len(computed) != len(digest) {
		return false, nil
	}

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

// readSalt resolves the position and returns the salt line stored there.
func (h *saltedHasher) readSalt(ctx context.Context, saltPosition int) (int, string, error) {
	position := saltPosition
	switch {
	case saltPosition == service.RandomSaltPosition:
		position = h.random.IntN(h.saltItemsCount - 1)
	case saltPosition < 0:
		return 0, "", errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails(
			"salt position must be non-negative or " + strconv.Itoa(service.RandomSaltPosition)))
	}

	lines, err := h.store.ReadLines(ctx)
	if err != nil {
		return 0, "", err
	}

	if position >= len(lines) {
		return 0, "", errors.WithStack(domainerrors.ErrSaltIndexOutOfRange.WithDetails(
			"position " + strconv.Itoa(position) + ", store has " + strconv.Itoa(len(lines)) + " lines"))
	}

	return position, lines[position], nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
