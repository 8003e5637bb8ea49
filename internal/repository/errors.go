package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStaleWrite is returned when a compare-and-swap update finds that
	// another session changed the record first.
	ErrStaleWrite = errors.New("record was modified by another session")
)
