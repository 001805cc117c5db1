package param

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/randl/hash40"
)

func fighter() *Node {
	return NewStruct(
		Named("walk_speed", NewFloat(1.25)),
		Named("jump_count", NewU8(2)),
		Named("weight", NewI16(-98)),
		Named("name", NewString("mario")),
		Named("heavy", NewBool(false)),
		Named("moves", NewList(
			NewHash(hash40.FromString("attack_11")),
			NewHash(0x0123456789),
		)),
		Named("items", NewList(
			NewStruct(Named("flag", NewBool(true))),
			NewStruct(),
		)),
		Named("frames", NewU32(4000000000)),
		Named("offset", NewI32(-7)),
		Named("air", NewI8(-3)),
		Named("ground", NewU16(60000)),
	)
}

func TestYAML_RoundTrip(t *testing.T) {
	labels := hash40.NewLabels(
		"walk_speed", "jump_count", "weight", "name", "heavy",
		"moves", "items", "flag", "attack_11",
	)

	for _, codec := range []YAML{{}, {Labels: labels, Indent: 4}} {
		want := fighter()

		data, err := codec.Encode(want)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		got, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("Decode() error = %v\n%s", err, data)
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s\n%s", diff, data)
		}
	}
}

func TestYAML_Labels(t *testing.T) {
	codec := YAML{Labels: hash40.NewLabels("walk_speed", "attack_11")}

	data, err := codec.Encode(NewStruct(
		Named("walk_speed", NewHash(hash40.FromString("attack_11"))),
		Named("unknown", NewBool(true)),
	))
	if err != nil {
		t.Fatal(err)
	}

	out := string(data)
	for _, want := range []string{"walk_speed:", "attack_11", hash40.FromString("unknown").String()} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestYAML_Decode(t *testing.T) {
	src := `
struct:
  walk_speed: {float: 2}
  jump_count: {u8: 3}
  moves:
    list:
      - {hash40: attack_11}
      - {hash40: "0x0123456789"}
`

	got, err := YAML{}.Decode([]byte(src))
	if err != nil {
		t.Fatal(err)
	}

	want := NewStruct(
		Named("walk_speed", NewFloat(2)),
		Named("jump_count", NewU8(3)),
		Named("moves", NewList(
			NewHash(hash40.FromString("attack_11")),
			NewHash(0x0123456789),
		)),
	)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"not yaml", "struct: [", ErrSyntax},
		{"two keys", "{bool: true, u8: 1}", ErrSyntax},
		{"unknown kind", "{quad: 1}", ErrKind},
		{"overflow", "{u8: 256}", ErrRange},
		{"negative unsigned", "{u16: -1}", ErrRange},
		{"wrong payload", "{bool: 3}", ErrSyntax},
		{"list payload", "{list: {a: {bool: true}}}", ErrSyntax},
		{"nested", "{struct: {a: {i8: x}}}", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := YAML{}.Decode([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewInt(t *testing.T) {
	tests := []struct {
		kind Kind
		v    int64
		want error
	}{
		{I8, -128, nil},
		{I8, 128, ErrRange},
		{U8, -1, ErrRange},
		{U32, 1 << 32, ErrRange},
		{I32, -1 << 31, nil},
		{Float, 1, ErrKind},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			n, err := NewInt(tt.kind, tt.v)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewInt(%v, %d) error = %v, want %v", tt.kind, tt.v, err, tt.want)
			}

			if err == nil && (n.Kind != tt.kind || n.Int != tt.v) {
				t.Errorf("NewInt() = %+v", n)
			}
		})
	}
}

func TestKind(t *testing.T) {
	for k := Bool; k <= Struct; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}

	if _, ok := ParseKind("invalid"); ok {
		t.Error("ParseKind(invalid) succeeded")
	}

	if I16.Class() != "int" || Hash.Class() != "hash40" {
		t.Errorf("Class() = %q, %q", I16.Class(), Hash.Class())
	}
}

func TestNode_Access(t *testing.T) {
	root := fighter()

	i, ok := root.Lookup(hash40.FromString("jump_count"))
	if !ok || i != 1 {
		t.Fatalf("Lookup(jump_count) = %d, %v", i, ok)
	}

	if !root.Replace(i, NewU8(9)) || root.Field("jump_count").Int != 9 {
		t.Error("Replace() did not store the node")
	}

	if root.Replace(root.Len(), NewU8(1)) {
		t.Error("Replace() past the end succeeded")
	}

	if root.Field("missing") != nil || NewBool(true).Child(0) != nil {
		t.Error("lookup of absent child returned a node")
	}
}

func TestNode_Clone(t *testing.T) {
	root := fighter()
	c := root.Clone()

	c.Field("items").List[0].Field("flag").Bool = false

	if !root.Field("items").List[0].Field("flag").Bool {
		t.Error("Clone() shares nodes with the original")
	}

	var leaves int

	root.Walk(func(n *Node) bool {
		if !n.Kind.IsContainer() {
			leaves++
		}

		return true
	})

	if leaves != 12 {
		t.Errorf("Walk() visited %d leaves, want 12", leaves)
	}
}

func TestNode_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"same tree", fighter(), fighter(), true},
		{"nil", nil, nil, true},
		{"nil and leaf", nil, NewBool(false), false},
		{"kind", NewI8(1), NewU8(1), false},
		{"int", NewU16(1), NewU16(2), false},
		{"float", NewFloat(1), NewFloat(1), true},
		{"string", NewString("a"), NewString("b"), false},
		{"list length", NewList(NewBool(true)), NewList(), false},
		{"field key", NewStruct(Named("a", NewBool(true))), NewStruct(Named("b", NewBool(true))), false},
		{"field value", NewStruct(Named("a", NewBool(true))), NewStruct(Named("a", NewBool(false))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %t, want %t", got, tt.want)
			}
		})
	}
}
