package repository

import "context"

// SaltStore is the line-oriented resource holding salts. Line i is salt i.
// Implementations read the backing resource on every call and never cache it.
type SaltStore interface {
	// ReadLines returns every line of the store. A missing resource yields
	// domain ErrResourceNotFound.
	ReadLines(ctx context.Context) ([]string, error)

	// Exists reports whether the backing resource is currently reachable.
	Exists(ctx context.Context) (bool, error)
}
