// Package apperr is the error taxonomy shared by usecases and adapters.
//
// Every domain failure belongs to exactly one kind. Adapters map the kind to a
// transport status; callers match either the kind or a domain sentinel with errors.Is.
package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrStateConflict = errors.New("state conflict")
	ErrPersistence   = errors.New("persistence error")
	ErrForbidden     = errors.New("forbidden")
)

// Error carries a kind, a message safe to show to clients and an optional cause.
type Error struct {
	kind  error
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil && e.kind == ErrPersistence {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

// Message is the client facing text.
func (e *Error) Message() string { return e.msg }

func (e *Error) Kind() error { return e.kind }

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func newErr(kind error, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{kind: kind, msg: msg}
}

func Validation(format string, args ...any) *Error { return newErr(ErrValidation, format, args...) }
func NotFound(format string, args ...any) *Error   { return newErr(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) *Error   { return newErr(ErrStateConflict, format, args...) }
func Forbidden(format string, args ...any) *Error  { return newErr(ErrForbidden, format, args...) }

// Persistence wraps a storage failure. The message never leaks the cause.
func Persistence(cause error) *Error {
	return &Error{kind: ErrPersistence, msg: "storage failure", cause: cause}
}

// Detail returns a copy of sentinel with a more specific message. errors.Is
// still matches the sentinel and its kind.
func Detail(sentinel *Error, format string, args ...any) *Error {
	return &Error{kind: sentinel.kind, msg: fmt.Sprintf(format, args...), cause: sentinel}
}

// KindOf reports the kind of err, or nil when err is not classified.
func KindOf(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrStateConflict, ErrForbidden, ErrPersistence} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// PublicMessage is what a client may see for err.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case ErrNotFound:
		return "resource not found"
	case ErrPersistence, nil:
		return "internal server error"
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.msg
	}
	return err.Error()
}

// FromStore classifies a repository error: record-not-found becomes notFound,
// already classified errors pass through, anything else is a persistence failure.
func FromStore(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if KindOf(err) != nil {
		return err
	}
	return Persistence(err)
}
