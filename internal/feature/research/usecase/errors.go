package usecase

import "errors"

var (
	// ErrEmptyInput is returned when the company input is blank.
	ErrEmptyInput = errors.New("company input is required")
	// ErrCompletionFailed wraps a completion call that failed on its final attempt.
	ErrCompletionFailed = errors.New("completion API error")
	// ErrSearchFailed wraps a search call that failed on its final attempt.
	ErrSearchFailed = errors.New("search API error")
)
