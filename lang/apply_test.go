package lang

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/param"
)

// TestApply_Constant sets one field and leaves its siblings alone.
func TestApply_Constant(t *testing.T) {
	doc := mustParse(t, `file "param.prc" {
    foo {
        return 5
    }
}`)

	root := param.NewStruct(
		param.Named("foo", param.NewI32(0)),
		param.Named("bar", param.NewI32(0)),
	)

	n, err := doc.ApplyTarget(context.Background(), "param.prc", root)
	if err != nil || n != 1 {
		t.Fatalf("ApplyTarget() = %d, %v", n, err)
	}

	want := param.NewStruct(
		param.Named("foo", param.NewI32(5)),
		param.Named("bar", param.NewI32(0)),
	)

	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

// TestApply_Wildcard sets a field in every element of a list.
func TestApply_Wildcard(t *testing.T) {
	doc := mustParse(t, `file "f" {
    "items.*.flag" {
        return true
    }
}`)

	root := param.NewStruct(param.Named("items", flags(3)))

	if err := doc.Apply(context.Background(), 0, root); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	for i := range 3 {
		item := root.Field("items").Child(i)
		if !item.Field("flag").Bool {
			t.Errorf("items.%d.flag = false, want true", i)
		}

		if item.Field("id").Int != int64(i) {
			t.Errorf("items.%d.id changed to %d", i, item.Field("id").Int)
		}
	}
}

// TestApply_IndependentDraws verifies each wildcard target gets its own
// value.
func TestApply_IndependentDraws(t *testing.T) {
	doc := mustParse(t, `file "f" {
    "items.*.id" {
        return from=0 to=200
    }
}`)

	root := param.NewStruct(param.Named("items", flags(50)))

	if err := doc.Apply(context.Background(), 0, root, WithSeed(3)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	seen := map[int64]bool{}
	for i := range 50 {
		seen[root.Field("items").Child(i).Field("id").Int] = true
	}

	if len(seen) < 10 {
		t.Errorf("distinct values = %d, want independent draws", len(seen))
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name     string
		leaf     *param.Node
		expr     string
		want     error
		src, dst string
	}{
		{
			name: "int to bool",
			leaf: param.NewBool(false),
			expr: "return 300",
			want: ErrInvalidAssignment,
			src:  "int",
			dst:  "bool",
		},
		{
			name: "int too big for i8",
			leaf: param.NewI8(0),
			expr: "return 300",
			want: ErrIntTooBig,
		},
		{
			name: "negative u16",
			leaf: param.NewU16(0),
			expr: "return -1",
			want: ErrIntTooBig,
		},
		{
			name: "float to int",
			leaf: param.NewU8(0),
			expr: "return 1.5",
			want: ErrInvalidAssignment,
			src:  "float",
			dst:  "int",
		},
		{
			name: "string to float",
			leaf: param.NewFloat(0),
			expr: `return "fast"`,
			want: ErrInvalidAssignment,
			src:  "string",
			dst:  "float",
		},
		{
			name: "bool to hash",
			leaf: param.NewHash(0),
			expr: "return false",
			want: ErrInvalidAssignment,
			src:  "bool",
			dst:  "hash40",
		},
		{
			name: "hash to string",
			leaf: param.NewString(""),
			expr: `return hash40="a"`,
			want: ErrInvalidAssignment,
			src:  "hash40",
			dst:  "string",
		},
		{
			name: "value to list",
			leaf: param.NewList(),
			expr: "return 1",
			want: ErrInvalidAssignment,
			src:  "int",
			dst:  "list",
		},
		{
			name: "value to struct",
			leaf: param.NewStruct(),
			expr: `return "x"`,
			want: ErrInvalidAssignment,
			src:  "string",
			dst:  "struct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, `file "f" {
    leaf {
        `+tt.expr+`
    }
}`)

			root := param.NewStruct(param.Named("leaf", tt.leaf))
			before := root.Clone()

			err := doc.Apply(context.Background(), 0, root)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.want)
			}

			if !IsEvalError(err) {
				t.Errorf("IsEvalError(%v) = false", err)
			}

			if diff := cmp.Diff(before, root); diff != "" {
				t.Errorf("failed assignment changed the tree (-want +got):\n%s", diff)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *Error", err)
			}

			if v, _ := e.Attr("entry"); v.String() != "f" {
				t.Errorf("entry = %q, want f", v.String())
			}

			if tt.src == "" {
				return
			}

			if v, _ := e.Attr("src"); v.String() != tt.src {
				t.Errorf("src = %q, want %q", v.String(), tt.src)
			}

			if v, _ := e.Attr("dst"); v.String() != tt.dst {
				t.Errorf("dst = %q, want %q", v.String(), tt.dst)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		dst  param.Kind
		v    Value
		want *param.Node
	}{
		{"bool", param.Bool, BoolValue(true), param.NewBool(true)},
		{"i8 min", param.I8, IntValue(-128), param.NewI8(-128)},
		{"u8 max", param.U8, IntValue(255), param.NewU8(255)},
		{"i16", param.I16, IntValue(-300), param.NewI16(-300)},
		{"u16", param.U16, IntValue(65535), param.NewU16(65535)},
		{"i32", param.I32, IntValue(-1 << 31), param.NewI32(-1 << 31)},
		{"u32 max", param.U32, IntValue(1<<32 - 1), param.NewU32(1<<32 - 1)},
		{"float from int", param.Float, IntValue(3), param.NewFloat(3)},
		{"float from float", param.Float, FloatValue(0.25), param.NewFloat(0.25)},
		{"hash from int", param.Hash, IntValue(0x10), param.NewHash(0x10)},
		{"hash from wide int", param.Hash, IntValue(1<<41 | 5), param.NewHash(5)},
		{"hash from string", param.Hash, StringValue("walk_speed"), param.NewHash(hash40.FromString("walk_speed"))},
		{"hash from hash", param.Hash, HashValue(0xabc), param.NewHash(0xabc)},
		{"string", param.String, StringValue("luigi"), param.NewString("luigi")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.dst, tt.v)
			if err != nil {
				t.Fatalf("Coerce() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Coerce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestApply_Original verifies original leaves every kind of leaf as is.
func TestApply_Original(t *testing.T) {
	doc := mustParse(t, `file "f" {
    "*" {
        original
    }
}`)

	root := param.NewStruct(
		param.Named("b", param.NewBool(true)),
		param.Named("i", param.NewI16(-4)),
		param.Named("f", param.NewFloat(2.5)),
		param.Named("h", param.NewHash(hash40.FromString("x"))),
		param.Named("s", param.NewString("y")),
		param.Named("l", param.NewList(param.NewU8(1))),
		param.Named("t", param.NewStruct()),
	)
	want := root.Clone()

	if err := doc.Apply(context.Background(), 0, root); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

// TestApply_ResolveAbort verifies a path that fails on one wildcard branch
// changes no branch.
func TestApply_ResolveAbort(t *testing.T) {
	doc := mustParse(t, `file "f" {
    "items.*.extra" {
        return 1
    }
}`)

	items := flags(3)
	items.List[0].Fields = append(items.List[0].Fields, param.Named("extra", param.NewI32(0)))

	root := param.NewStruct(param.Named("items", items))
	want := root.Clone()

	err := doc.Apply(context.Background(), 0, root)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("Apply() error = %v, want %v", err, ErrMissingField)
	}

	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

// TestApply_PartialEdits verifies edits before a failure remain applied.
func TestApply_PartialEdits(t *testing.T) {
	doc := mustParse(t, `file "f" {
    a {
        return 1
    }
    missing {
        return 2
    }
    b {
        return 3
    }
}`)

	root := param.NewStruct(
		param.Named("a", param.NewI32(0)),
		param.Named("b", param.NewI32(0)),
	)

	if err := doc.Apply(context.Background(), 0, root); !errors.Is(err, ErrMissingField) {
		t.Fatalf("Apply() error = %v, want %v", err, ErrMissingField)
	}

	if got := root.Field("a").Int; got != 1 {
		t.Errorf("a = %d, want 1", got)
	}

	if got := root.Field("b").Int; got != 0 {
		t.Errorf("b = %d, want 0", got)
	}
}

func TestDocument_ApplyTarget(t *testing.T) {
	doc := mustParse(t, `set "slots" {
    value 0
    value "b"
}
file "c{slots}/param.prc" {
    speed {
        return 2.0
    }
}
file "c0/param.prc" {
    name {
        return "first"
    }
}
file "other.prc" {
    speed {
        return 9.0
    }
}`)

	tests := []struct {
		name   string
		target string
		n      int
		want   *param.Node
		err    error
	}{
		{
			name:   "template and literal",
			target: "c0/param.prc",
			n:      2,
			want: param.NewStruct(
				param.Named("speed", param.NewFloat(2)),
				param.Named("name", param.NewString("first")),
			),
		},
		{
			name:   "template only",
			target: "cb/param.prc",
			n:      1,
			want: param.NewStruct(
				param.Named("speed", param.NewFloat(2)),
				param.Named("name", param.NewString("")),
			),
		},
		{
			name:   "no match",
			target: "c1/param.prc",
			err:    ErrEntryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := param.NewStruct(
				param.Named("speed", param.NewFloat(1)),
				param.Named("name", param.NewString("")),
			)

			n, err := doc.ApplyTarget(context.Background(), tt.target, root)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("ApplyTarget() error = %v, want %v", err, tt.err)
				}

				return
			}

			if err != nil || n != tt.n {
				t.Fatalf("ApplyTarget() = %d, %v, want %d", n, err, tt.n)
			}

			if diff := cmp.Diff(tt.want, root); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocument_ApplyIndex(t *testing.T) {
	doc := mustParse(t, `file "f" {
    a {
        return 1
    }
}`)

	root := param.NewStruct(param.Named("a", param.NewI32(0)))

	for _, i := range []int{-1, 1} {
		if err := doc.Apply(context.Background(), i, root); !errors.Is(err, ErrEntryNotFound) {
			t.Errorf("Apply(%d) error = %v, want %v", i, err, ErrEntryNotFound)
		}
	}
}

func BenchmarkApply(b *testing.B) {
	doc := mustParse(b, `set "names" {
    value "a"
    value "b"
    value "c"
}
file "f" {
    "items.*.id" {
        chance percent=25 {
            return from=0 to=255
        }
        chance percent=75 {
            original
        }
    }
    "items.*.flag" {
        return {
            value true
            value false
        }
    }
}`)

	a := NewApplier(WithSeed(1))
	root := param.NewStruct(param.Named("items", flags(64)))

	b.ResetTimer()

	for b.Loop() {
		if err := a.Apply(context.Background(), doc.Entries[0], root, doc.Sets); err != nil {
			b.Fatal(err)
		}
	}
}
