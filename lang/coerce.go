package lang

import (
	"log/slog"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/param"
)

// coercion converts a value to a leaf of a given kind.
type coercion func(dst param.Kind, v Value) (*param.Node, error)

type coercionKey struct {
	dst param.Kind
	src ValueKind
}

// coercions lists every assignment that is allowed. Any pair missing from
// the table is rejected with [ErrInvalidAssignment].
var coercions = func() map[coercionKey]coercion {
	m := map[coercionKey]coercion{
		{param.Bool, KindBool}:     func(_ param.Kind, v Value) (*param.Node, error) { return param.NewBool(v.Bool), nil },
		{param.Float, KindInt}:     func(_ param.Kind, v Value) (*param.Node, error) { return param.NewFloat(float32(v.Int)), nil },
		{param.Float, KindFloat}:   func(_ param.Kind, v Value) (*param.Node, error) { return param.NewFloat(float32(v.Float)), nil },
		{param.Hash, KindInt}:      func(_ param.Kind, v Value) (*param.Node, error) { return param.NewHash(hash40.New(uint64(v.Int))), nil },
		{param.Hash, KindString}:   func(_ param.Kind, v Value) (*param.Node, error) { return param.NewHash(hash40.FromString(v.Str)), nil },
		{param.Hash, KindHash}:     func(_ param.Kind, v Value) (*param.Node, error) { return param.NewHash(v.Hash), nil },
		{param.String, KindString}: func(_ param.Kind, v Value) (*param.Node, error) { return param.NewString(v.Str), nil },
	}

	for _, k := range []param.Kind{param.I8, param.U8, param.I16, param.U16, param.I32, param.U32} {
		m[coercionKey{k, KindInt}] = coerceInt
	}

	return m
}()

func coerceInt(dst param.Kind, v Value) (*param.Node, error) {
	n, err := param.NewInt(dst, v.Int)
	if err != nil {
		return nil, ErrIntTooBig.With(
			slog.Int64("value", v.Int),
			slog.String("dst", dst.String()),
		)
	}

	return n, nil
}

// Coerce returns a leaf of kind dst holding v.
func Coerce(dst param.Kind, v Value) (*param.Node, error) {
	if fn, ok := coercions[coercionKey{dst, v.Kind}]; ok {
		return fn(dst, v)
	}

	return nil, ErrInvalidAssignment.With(
		slog.String("src", v.Kind.String()),
		slog.String("dst", dst.Class()),
	).Wrap(errorf("cannot assign %s to %s", v.Kind, dst.Class()))
}
