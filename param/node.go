// Package param models the structured parameter trees that randl documents
// edit.
//
// A tree is made of [Node] values. Containers are Struct (an ordered list of
// fields keyed by [hash40.Hash40]) and List (an ordered list of nodes).
// Leaves hold a bool, a fixed-width integer, a 32-bit float, a hash or a
// string. Integer leaves of every width store their value in [Node.Int].
//
// The on-disk binary format is not implemented here. Trees cross process
// boundaries through a [Codec]; [YAML] is the text codec used by the
// command line.
package param

import (
	"fmt"

	"github.com/ardnew/randl/hash40"
)

// Node is one element of a param tree. Only the payload field selected by
// Kind is meaningful.
type Node struct {
	Text   string
	List   []*Node
	Fields []Field
	Int    int64
	Hash   hash40.Hash40
	Float  float32
	Kind   Kind
	Bool   bool
}

// Field is one named member of a Struct.
type Field struct {
	Node *Node
	Hash hash40.Hash40
}

// Named returns a Field keyed by the hash of name.
func Named(name string, n *Node) Field {
	return Field{Hash: hash40.FromString(name), Node: n}
}

func NewBool(v bool) *Node          { return &Node{Kind: Bool, Bool: v} }
func NewI8(v int8) *Node            { return &Node{Kind: I8, Int: int64(v)} }
func NewU8(v uint8) *Node           { return &Node{Kind: U8, Int: int64(v)} }
func NewI16(v int16) *Node          { return &Node{Kind: I16, Int: int64(v)} }
func NewU16(v uint16) *Node         { return &Node{Kind: U16, Int: int64(v)} }
func NewI32(v int32) *Node          { return &Node{Kind: I32, Int: int64(v)} }
func NewU32(v uint32) *Node         { return &Node{Kind: U32, Int: int64(v)} }
func NewFloat(v float32) *Node      { return &Node{Kind: Float, Float: v} }
func NewHash(v hash40.Hash40) *Node { return &Node{Kind: Hash, Hash: v & hash40.Mask} }
func NewString(v string) *Node      { return &Node{Kind: String, Text: v} }
func NewList(v ...*Node) *Node      { return &Node{Kind: List, List: v} }
func NewStruct(v ...Field) *Node    { return &Node{Kind: Struct, Fields: v} }

// NewInt returns an integer leaf of kind k holding v.
// It fails if k is not an integer kind or v does not fit in it.
func NewInt(k Kind, v int64) (*Node, error) {
	lo, hi, ok := k.Bounds()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an integer kind", ErrKind, k)
	}

	if v < lo || v > hi {
		return nil, fmt.Errorf("%w: %d does not fit %s", ErrRange, v, k)
	}

	return &Node{Kind: k, Int: v}, nil
}

// Len returns the number of children of a container, or 0 for a leaf.
func (n *Node) Len() int {
	switch n.Kind {
	case List:
		return len(n.List)
	case Struct:
		return len(n.Fields)
	default:
		return 0
	}
}

// Child returns the child in slot i of a container, or nil if there is none.
func (n *Node) Child(i int) *Node {
	switch {
	case i < 0 || i >= n.Len():
		return nil
	case n.Kind == List:
		return n.List[i]
	default:
		return n.Fields[i].Node
	}
}

// Replace stores c in slot i of a container. It reports false when the slot
// does not exist.
func (n *Node) Replace(i int, c *Node) bool {
	switch {
	case i < 0 || i >= n.Len():
		return false
	case n.Kind == List:
		n.List[i] = c
	default:
		n.Fields[i].Node = c
	}

	return true
}

// Lookup returns the slot of the first Struct field keyed by h.
func (n *Node) Lookup(h hash40.Hash40) (int, bool) {
	if n.Kind != Struct {
		return 0, false
	}

	for i, f := range n.Fields {
		if f.Hash == h {
			return i, true
		}
	}

	return 0, false
}

// Field returns the value of the Struct field named name, or nil.
func (n *Node) Field(name string) *Node {
	if i, ok := n.Lookup(hash40.FromString(name)); ok {
		return n.Fields[i].Node
	}

	return nil
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n

	if n.List != nil {
		c.List = make([]*Node, len(n.List))
		for i, e := range n.List {
			c.List[i] = e.Clone()
		}
	}

	if n.Fields != nil {
		c.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			c.Fields[i] = Field{Hash: f.Hash, Node: f.Node.Clone()}
		}
	}

	return &c
}

// Walk calls fn for n and each of its descendants in depth-first order,
// stopping early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil || !fn(n) {
		return false
	}

	for i := range n.Len() {
		if !n.Child(i).Walk(fn) {
			return false
		}
	}

	return true
}

// Equal reports whether n and o have the same shape, kinds, keys and
// payloads.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Kind != o.Kind || n.Len() != o.Len() {
		return false
	}

	switch n.Kind {
	case Bool:
		return n.Bool == o.Bool
	case Float:
		return n.Float == o.Float
	case Hash:
		return n.Hash == o.Hash
	case String:
		return n.Text == o.Text
	case List, Struct:
		for i := range n.Len() {
			if n.Kind == Struct && n.Fields[i].Hash != o.Fields[i].Hash {
				return false
			}

			if !n.Child(i).Equal(o.Child(i)) {
				return false
			}
		}

		return true
	default:
		return n.Int == o.Int
	}
}
