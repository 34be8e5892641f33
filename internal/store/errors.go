package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when creating a user whose username
	// already exists. Uniqueness is enforced by a unique index on the
	// users collection.
	ErrUsernameTaken = errors.New("username already taken")
)
