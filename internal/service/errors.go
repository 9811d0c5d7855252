// Package service holds the business rules of the activity registration
// platform: account registration and login, the activity catalog and student
// enrollment.
//
// Error handling:
// Every rule violation is an *Error that wraps one of the kind sentinels
// below and carries the message shown to the caller. Handlers pick the HTTP
// status with errors.Is against the kind:
//
//	switch {
//	case errors.Is(err, service.ErrUnauthorized):
//	    // 401
//	case errors.Is(err, service.ErrForbidden):
//	    // 403
//	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
//	    // 400
//	}
//
// Any error that wraps no kind is an infrastructure failure.
package service

import "errors"

// Error kinds.
var (
	// ErrValidation: missing or malformed input. HTTP 400.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: a uniqueness rule was violated. HTTP 400.
	ErrConflict = errors.New("conflict")

	// ErrNotFound: a referenced record does not exist. HTTP 400.
	ErrNotFound = errors.New("not found")

	// ErrAuth: credentials did not verify. HTTP 400.
	ErrAuth = errors.New("authentication failed")

	// ErrDeadline: the action was attempted after its cutoff. HTTP 400.
	ErrDeadline = errors.New("deadline passed")

	// ErrUnauthorized: no session. HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: the session's role may not perform the action. HTTP 403.
	ErrForbidden = errors.New("forbidden")
)

type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Message returns the caller-facing text.
func (e *Error) Message() string { return e.msg }

var (
	ErrEmailTaken         = newError(ErrConflict, "email already registered")
	ErrUsernameTaken      = newError(ErrConflict, "username already taken")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrWrongPassword      = newError(ErrAuth, "wrong password")
	ErrPasswordTooLong    = newError(ErrValidation, "password too long")
	ErrActivityNotFound   = newError(ErrNotFound, "activity not found")
	ErrRegistrationClosed = newError(ErrDeadline, "registration closed")
	ErrAlreadyEnrolled    = newError(ErrConflict, "already enrolled")
	ErrStudentsOnly       = newError(ErrForbidden, "only students may enroll")
	ErrNoSession          = newError(ErrUnauthorized, "Unauthorized")
	ErrWrongRole          = newError(ErrForbidden, "Forbidden")
)

// Invalid builds an ErrValidation with a custom message, for input that
// failed to decode before reaching a service.
func Invalid(msg string) error {
	return newError(ErrValidation, msg)
}
