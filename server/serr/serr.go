// Package serr holds typed errors shared across the Shrdlite server's HTTP
// layer. Its Error type carries a message plus one or more 'cause' errors;
// calling errors.Is() on an Error with any of its causes returns true, so
// handlers can classify failures without typecasting.
package serr

import "errors"

var (
	ErrBadArgument   = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal = errors.New("malformed data in request")
)

// Error is the typed error the server's endpoint plumbing returns. It holds
// a message explaining what happened and zero or more causes. If at least
// one cause is defined, Error() appends the first cause's text to the
// message.
//
// Create one with New rather than using the type directly.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the
// text of its first cause if one is defined. With no message but at least
// one cause, the first cause's text alone is returned.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

// Unwrap returns the causes of the Error, or nil if none were defined.
//
// This function is for interaction with the errors API. It will only be
// used in Go version 1.20 and later; 1.19 will default to use of Error.Is
// when calling errors.Is on the Error.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// Is returns whether the Error is itself the given target error, or has it
// among its causes.
//
// This function is for interaction with the errors API.
func (e Error) Is(target error) bool {
	if errTarget, ok := target.(Error); ok {
		if e.msg == errTarget.msg && len(e.cause) == len(errTarget.cause) {
			allCausesEqual := true
			for i := range e.cause {
				if e.cause[i] != errTarget.cause[i] {
					allCausesEqual = false
					break
				}
			}
			if allCausesEqual {
				return true
			}
		}
	}

	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
