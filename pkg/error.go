package pkg

// Sentinel errors shared by the command line and host packages.
// These errors can be tested using errors.Is.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadInput is returned when reading a document or param tree fails.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrWriteOutput is returned when writing a param tree or report fails.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrDecode is returned when a param tree cannot be decoded.
var ErrDecode = MakeErrorf("failed to decode param tree")

// ErrEncode is returned when a param tree cannot be encoded.
var ErrEncode = MakeErrorf("failed to encode param tree")

// ErrInvalidFormat is returned when an unknown output format is requested.
var ErrInvalidFormat = MakeErrorf("invalid format")

// ErrConfig is returned when configuration cannot be read from the
// environment.
var ErrConfig = MakeErrorf("invalid configuration")

// MakeError constructs an Error from the given errors in order.
// Nil errors are skipped.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns all errors in the chain separated by ": ", in the order they
// were added.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to a copy of the receiver.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to a copy of the receiver.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors contained in the receiver.
func (e Error) Unwrap() []error { return e }

// Is reports whether target is an Error whose chain is a prefix of the
// receiver's chain. It lets a sentinel match any chain derived from it.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if t[i] != e[i] {
			return false
		}
	}

	return true
}

// UnwrapErrors flattens err into an Error. Wrapped errors are listed before
// the error that wraps them.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(Error); ok {
		return slices.Clone(e)
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
