package domain

import "errors"

// ErrorKind classifies an engine failure so the API layer can map it to a
// wire-level status without inspecting message text.
type ErrorKind string

const (
	ErrKindValidation    ErrorKind = "validation"    // malformed or missing input -> 400
	ErrKindAuthorization ErrorKind = "authorization" // wrong role or non-owner actor -> 403
	ErrKindNotFound      ErrorKind = "not_found"     // referenced entity absent -> 404
	ErrKindConflict      ErrorKind = "conflict"      // duplicate pending request, etc. -> 409
	ErrKindInvalidState  ErrorKind = "invalid_state" // transition from a non-eligible state -> 409
)

// Error is the typed error returned by all engine operations.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{Kind: ErrKindValidation, Message: message}
}

func NewAuthorizationError(message string) *Error {
	return &Error{Kind: ErrKindAuthorization, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: ErrKindNotFound, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: ErrKindConflict, Message: message}
}

func NewInvalidStateError(message string) *Error {
	return &Error{Kind: ErrKindInvalidState, Message: message}
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
