package lang

import (
	"strconv"

	"github.com/ardnew/randl/hash40"
)

// ValueKind identifies the variant of a [Value].
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindHash
	KindOriginal
)

var valueKindName = [...]string{
	KindInvalid:  "invalid",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindBool:     "bool",
	KindHash:     "hash40",
	KindOriginal: "original",
}

func (k ValueKind) String() string {
	if int(k) < len(valueKindName) {
		return valueKindName[k]
	}

	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a literal from a document or the result of evaluating an [Expr].
// Only the payload field selected by Kind is meaningful.
type Value struct {
	Str   string
	Int   int64
	Float float64
	Hash  hash40.Hash40
	Kind  ValueKind
	Bool  bool
}

// Original is the result of the original expression. Applying it leaves the
// target unchanged.
var Original = Value{Kind: KindOriginal}

// IntValue returns an integer [Value].
func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

// FloatValue returns a real [Value].
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }

// StringValue returns a string [Value].
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// BoolValue returns a boolean [Value].
func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// HashValue returns a hash40 [Value]. Bits above the low 40 are cleared.
func HashValue(v hash40.Hash40) Value { return Value{Kind: KindHash, Hash: v & hash40.Mask} }

// IsOriginal reports whether v is [Original].
func (v Value) IsOriginal() bool { return v.Kind == KindOriginal }

// String returns the text form of v. Integers are base 10 and strings are
// returned verbatim, which is the form used to expand target templates.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindHash:
		return v.Hash.String()
	default:
		return v.Kind.String()
	}
}

// Set is an ordered pool of values. Members need not share a kind.
type Set []Value
