package errors

import "errors"

// Common application errors shared across services and handlers.
var (
	// ErrNotFound is used when a record or resource does not exist, or when the
	// caller must not learn that it exists (private quiz requested by a non-owner).
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is used for authentication failures (missing or bad token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is used when the user lacks permission for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is used for malformed or missing input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is used for state conflicts (duplicate username, etc).
	ErrConflict = errors.New("resource state conflict")
)

// Play-flow errors. Each maps to a distinct user-facing failure in the quiz
// session endpoints.
var (
	// ErrInvalidCode is returned when a join code is not attached to any public quiz.
	ErrInvalidCode = errors.New("invalid or unknown join code")

	// ErrQuizEmpty is returned when a quiz has no questions and cannot be played.
	ErrQuizEmpty = errors.New("quiz has no questions")

	// ErrQuestionMismatch is returned when a submitted answer does not reference
	// the question expected at the submitted sequence position.
	ErrQuestionMismatch = errors.New("question does not match expected sequence position")

	// ErrInvalidOption is returned when a submitted option id does not belong to
	// the question being answered.
	ErrInvalidOption = errors.New("answer option does not belong to question")
)
