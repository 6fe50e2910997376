package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrNeedsReview marks a game excluded from automatic processing by a data-integrity flag.
	ErrNeedsReview = errors.New("game needs review")
)
