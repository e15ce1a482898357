package store

import "errors"

var (
	// ErrNotFound is returned when an item doesn't exist at the given key.
	ErrNotFound = errors.New("store: item not found")

	// ErrAlreadyExists is returned when a conditional create finds the key occupied.
	ErrAlreadyExists = errors.New("store: item already exists")

	// ErrEmptyKey is returned when a key or index argument is empty.
	// Raised before any request is issued.
	ErrEmptyKey = errors.New("store: empty key argument")
)
