// Package apperror defines the error kinds shared by services and handlers.
package apperror

import (
	"errors"
)

// Kind classifies an error so transports can map it without parsing messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicate
	KindInvalidArgument
	KindIllegalState
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindIllegalState:
		return "illegal_state"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error carries a kind, a client-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, apperror.NotFound("")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error        { return newError(KindNotFound, message) }
func Duplicate(message string) *Error       { return newError(KindDuplicate, message) }
func InvalidArgument(message string) *Error { return newError(KindInvalidArgument, message) }
func IllegalState(message string) *Error    { return newError(KindIllegalState, message) }
func Unauthenticated(message string) *Error { return newError(KindUnauthenticated, message) }

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// Wrap annotates err with message. The kind of the first *Error found in the
// chain is kept; anything else becomes KindInternal. The cause stays reachable
// through errors.Unwrap.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err. Internal causes are not exposed.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "internal server error"
}
