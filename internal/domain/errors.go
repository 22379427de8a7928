package domain

import "errors"

var (
	// ErrCardNotFound is returned when a flashcard id does not exist.
	ErrCardNotFound = errors.New("flashcard not found")
	// ErrUserNotFound is returned when a user has no progress record.
	ErrUserNotFound = errors.New("user not found")
	// ErrSetFull is returned when a user's flashcard set is at capacity.
	ErrSetFull = errors.New("flashcard set is full")
)
