package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers at the API boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Error is a classified error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound returns an error of kind KindNotFound.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Invalid returns an error of kind KindInvalid.
func Invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}

// Invalidf formats a KindInvalid error.
func Invalidf(format string, args ...interface{}) *Error {
	return Invalid(fmt.Sprintf(format, args...))
}

// KindOf reports the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsInvalid(err error) bool { return KindOf(err) == KindInvalid }
