package repository

import "errors"

// Repository-level errors with meaning beyond a generic persistence failure.
var (
	// ErrCodeTaken is returned when assigning a join code hits the unique
	// constraint on the quiz_code column. The caller retries with a new code;
	// the constraint is the sole source of truth for uniqueness.
	ErrCodeTaken = errors.New("join code already taken")
)
