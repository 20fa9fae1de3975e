package workflow

import "errors"

// Kind classifies workflow failures. Every operation either fully
// succeeds or fails with exactly one of these kinds, leaving the task
// unchanged.
type Kind string

const (
	// KindValidation is a missing or empty required field.
	KindValidation Kind = "VALIDATION"
	// KindNotFound is an unknown task, item, or user id.
	KindNotFound Kind = "NOT_FOUND"
	// KindInvalidTransition is an action that is not legal from the
	// task's current status.
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	// KindDenied is an authorization gate rejection.
	KindDenied Kind = "DENIED"
)

// Error carries a failure kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewInvalidTransitionError(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

func NewDeniedError(message string) *Error {
	return &Error{Kind: KindDenied, Message: message}
}

// KindOf returns the workflow kind of err, or "" if err is not a
// workflow error.
func KindOf(err error) Kind {
	var wErr *Error
	if errors.As(err, &wErr) {
		return wErr.Kind
	}
	return ""
}
