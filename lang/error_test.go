package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := ErrInvalidReturn.With(slog.String("node", "file > x")).Wrap(cause)

	if got, want := err.Error(), "invalid return: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	for _, target := range []error{ErrInvalidReturn, cause} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(%v, %v) = false", err, target)
		}
	}

	if errors.Is(err, ErrInvalidValue) {
		t.Errorf("errors.Is(%v, %v) = true", err, ErrInvalidValue)
	}

	if ErrInvalidReturn.Unwrap() != nil || len(ErrInvalidReturn.attrs) != 0 {
		t.Errorf("deriving an error modified the sentinel")
	}

	if v, ok := err.Attr("node"); !ok || v.String() != "file > x" {
		t.Errorf("Attr(node) = %v, %t", v, ok)
	}

	if err.Class() != ClassParse || !IsParseError(err) || IsEvalError(err) {
		t.Errorf("Class() = %v, want %v", err.Class(), ClassParse)
	}
}

func TestError_WithDoesNotAlias(t *testing.T) {
	base := ErrMissingField.With(slog.String("a", "1"))
	x := base.With(slog.String("b", "x"))
	y := base.With(slog.String("b", "y"))

	if v, _ := x.Attr("b"); v.String() != "x" {
		t.Errorf("x.b = %v, want x", v)
	}

	if v, _ := y.Attr("b"); v.String() != "y" {
		t.Errorf("y.b = %v, want y", v)
	}

	if !errors.Is(y, ErrMissingField) || errors.Is(y, ErrInvalidField) {
		t.Errorf("derived error matches the wrong sentinel")
	}
}

func TestError_Chain(t *testing.T) {
	inner := ErrIntTooBig.With(slog.Int64("value", 300))
	outer := ErrInvalidPath.Wrap(inner)

	if !errors.Is(outer, ErrIntTooBig) || !errors.Is(outer, ErrInvalidPath) {
		t.Errorf("chain does not match both sentinels: %v", outer)
	}

	if got := WrapError(outer); got != outer {
		t.Errorf("WrapError() rewrapped an *Error")
	}

	plain := WrapError(io.EOF)
	if !errors.Is(plain, io.EOF) || plain.Class() != ClassNone {
		t.Errorf("WrapError(io.EOF) = %v (%v)", plain, plain.Class())
	}
}

func TestError_LogValue(t *testing.T) {
	v := ErrEmptySet.With(slog.String("set", "s")).Wrap(io.EOF).LogValue()

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "empty set", "cause": "EOF", "set": "s"}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("LogValue()[%s] = %q, want %q", k, got[k], w)
		}
	}
}
