package param

import (
	"math"
	"strconv"
)

// Kind identifies the variant of a [Node].
type Kind uint8

const (
	Invalid Kind = iota
	Bool
	I8
	U8
	I16
	U16
	I32
	U32
	Float
	Hash
	String
	List
	Struct
)

var kindName = [...]string{
	Invalid: "invalid",
	Bool:    "bool",
	I8:      "i8",
	U8:      "u8",
	I16:     "i16",
	U16:     "u16",
	I32:     "i32",
	U32:     "u32",
	Float:   "float",
	Hash:    "hash40",
	String:  "string",
	List:    "list",
	Struct:  "struct",
}

// String returns the lower-case name of k, such as "u16" or "hash40".
func (k Kind) String() string {
	if int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Class returns the name of the family k belongs to. All integer kinds
// belong to "int"; every other kind is its own family.
func (k Kind) Class() string {
	if k.IsInt() {
		return "int"
	}

	return k.String()
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindName {
		if name == s && Kind(k) != Invalid {
			return Kind(k), true
		}
	}

	return Invalid, false
}

// IsInt reports whether k is one of the fixed-width integer kinds.
func (k Kind) IsInt() bool { return k >= I8 && k <= U32 }

// IsContainer reports whether k is List or Struct.
func (k Kind) IsContainer() bool { return k == List || k == Struct }

// Bounds returns the inclusive range of values an integer kind can hold.
// It returns ok false for any other kind.
func (k Kind) Bounds() (lo, hi int64, ok bool) {
	switch k {
	case I8:
		return math.MinInt8, math.MaxInt8, true
	case U8:
		return 0, math.MaxUint8, true
	case I16:
		return math.MinInt16, math.MaxInt16, true
	case U16:
		return 0, math.MaxUint16, true
	case I32:
		return math.MinInt32, math.MaxInt32, true
	case U32:
		return 0, math.MaxUint32, true
	default:
		return 0, 0, false
	}
}
