package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Class separates errors raised while loading a document from errors raised
// while applying one.
type Class uint8

const (
	ClassNone Class = iota
	ClassParse
	ClassEval
)

func (c Class) String() string {
	switch c {
	case ClassParse:
		return "parse"
	case ClassEval:
		return "eval"
	default:
		return "none"
	}
}

// Errors raised while loading a document.
var (
	ErrReadInput        = newError(ClassParse, "failed to read input")
	ErrSyntax           = newError(ClassParse, "invalid KDL")
	ErrInvalidEntry     = newError(ClassParse, "invalid top-level entry")
	ErrNonValueInSet    = newError(ClassParse, "set members must be value nodes")
	ErrInvalidValue     = newError(ClassParse, "invalid value")
	ErrInvalidType      = newError(ClassParse, "invalid value type")
	ErrExprRequired     = newError(ClassParse, "expression required")
	ErrInvalidExpr      = newError(ClassParse, "invalid expression")
	ErrTooManyExprs     = newError(ClassParse, "too many expressions")
	ErrMixedExprs       = newError(ClassParse, "chance cannot be mixed with other expressions")
	ErrNoPercent        = newError(ClassParse, "chance requires a percent")
	ErrInvalidChance    = newError(ClassParse, "invalid chance")
	ErrInvalidReturn    = newError(ClassParse, "invalid return")
	ErrInvalidPath      = newError(ClassParse, "invalid path")
	ErrTemplate         = newError(ClassParse, "invalid target template")
	ErrMaxDepthExceeded = newError(ClassParse, "maximum expression depth exceeded")
)

// Errors raised while applying a document.
var (
	ErrMissingField      = newError(ClassEval, "missing field")
	ErrIndexOutOfBounds  = newError(ClassEval, "index out of bounds")
	ErrInvalidField      = newError(ClassEval, "invalid field")
	ErrInvalidAssignment = newError(ClassEval, "invalid assignment")
	ErrIntTooBig         = newError(ClassEval, "integer too big")
	ErrInvalidSet        = newError(ClassEval, "invalid set")
	ErrEmptySet          = newError(ClassEval, "empty set")
	ErrEmptyRange        = newError(ClassEval, "empty range")
	ErrEntryNotFound     = newError(ClassEval, "entry not found")
	ErrMalformedExpr     = newError(ClassEval, "malformed expression")
)

// ErrUnformattable is returned when a document holds text that has no KDL
// form.
var ErrUnformattable = newError(ClassNone, "document cannot be written as KDL")

var errEmptySegment = errors.New("empty segment")

// Error is an error with structured logging attributes.
// Every Error is derived from one of the sentinels above, and [errors.Is]
// matches an Error against the sentinel it was derived from.
type Error struct {
	msg   string
	err   error
	base  *Error
	attrs []slog.Attr
	class Class
}

// NewError creates an unclassified sentinel Error.
func NewError(msg string) *Error { return newError(ClassNone, msg) }

func newError(class Class, msg string) *Error {
	return &Error{msg: msg, class: class}
}

// WrapError returns err as an *Error, wrapping it in an unclassified Error
// if it is not one already.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error returns "<msg>: <cause>", omitting whichever part is empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.sentinel() == t.sentinel()
}

// Class returns the class of e.
func (e *Error) Class() Class { return e.class }

// Attr returns the value of the attribute named key.
// When key is repeated the last value wins.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for i := len(e.attrs) - 1; i >= 0; i-- {
		if e.attrs[i].Key == key {
			return e.attrs[i].Value, true
		}
	}

	return slog.Value{}, false
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], attrs...)

	return c
}

func (e *Error) derive() *Error {
	c := *e
	c.base = e.sentinel()

	return &c
}

func (e *Error) sentinel() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// IsParseError reports whether err arose while loading a document.
func IsParseError(err error) bool { return classOf(err) == ClassParse }

// IsEvalError reports whether err arose while applying a document.
func IsEvalError(err error) bool { return classOf(err) == ClassEval }

func classOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.class
	}

	return ClassNone
}

func pathAttr(s string) slog.Attr { return slog.String("path", s) }
