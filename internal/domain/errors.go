package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so API callers can tell the cases apart.
type Kind string

const (
	// KindConfiguration indicates the external-service credential is missing.
	KindConfiguration Kind = "CONFIGURATION_ERROR"
	// KindConflict indicates the phone number is already taken.
	KindConflict Kind = "CONFLICT"
	// KindUpstream indicates a non-success response from a third-party service.
	KindUpstream Kind = "UPSTREAM_ERROR"
	// KindValidation indicates the validation service rejected the phone number.
	KindValidation Kind = "VALIDATION_ERROR"
	// KindInvalidArgument indicates the caller supplied unusable arguments.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	// KindNotFound indicates no contact has the given identifier.
	KindNotFound Kind = "NOT_FOUND"
	// KindInternal is the fallback for store or infrastructure failures.
	KindInternal Kind = "INTERNAL"
)

// Error is the caller-visible failure type. It wraps an optional underlying
// cause and carries a Kind that survives to the API layer unmasked.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Extensions exposes the error kind to GraphQL responses as extensions.code.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// E builds a new typed error with a formatted message.
func E(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
