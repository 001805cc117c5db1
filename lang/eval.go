package lang

import (
	"log/slog"
	"math"
)

// Rand is the source of randomness used by an [Evaluator].
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
	Uint64N(n uint64) uint64
}

// Evaluator computes values from expressions. It is not safe for concurrent
// use because it owns its random source.
type Evaluator struct {
	rand Rand
}

// NewEvaluator returns an Evaluator configured by opts. Without [WithRand]
// or [WithSeed] it draws from a randomly seeded generator.
func NewEvaluator(opts ...Option) *Evaluator {
	return &Evaluator{rand: makeOptions(opts...).rand}
}

// Eval produces one value from expr. Named set references are looked up in
// sets.
//
// Expressions built in code are checked as they are reached. A missing
// expression, a return without a value and a random expression without
// branches yield [ErrMalformedExpr].
func (e *Evaluator) Eval(expr *Expr, sets map[string]Set) (Value, error) {
	for {
		switch {
		case expr == nil:
			return Value{}, ErrMalformedExpr.Wrap(errorf("nil expression"))

		case expr.Kind == ExprOriginal:
			return Original, nil

		case expr.Kind == ExprReturn:
			if expr.Return == nil {
				return Value{}, ErrMalformedExpr.Wrap(errorf("%s without a value", nodeReturn))
			}

			return e.ret(expr.Return, sets)

		case expr.Kind == ExprRandom && len(expr.Chances) > 0:
			expr = e.pick(expr.Chances)

		case expr.Kind == ExprRandom:
			return Value{}, ErrMalformedExpr.Wrap(errorf("%s list is empty", nodeChance))

		default:
			return Value{}, ErrMalformedExpr.With(slog.Int("kind", int(expr.Kind)))
		}
	}
}

// pick selects one branch of a chance list. A lone branch is taken without
// drawing. Otherwise a percentile in [0, 100) is reduced by each branch's
// percent in turn, and the first branch that takes it below zero wins. The
// last branch receives any remainder.
func (e *Evaluator) pick(chances []Chance) *Expr {
	last := len(chances) - 1
	if last == 0 {
		return chances[0].Expr
	}

	u := e.rand.Float64() * 100

	for _, c := range chances[:last] {
		if u -= c.Percent; u < 0 {
			return c.Expr
		}
	}

	return chances[last].Expr
}

func (e *Evaluator) ret(r *Return, sets map[string]Set) (Value, error) {
	switch r.Kind {
	case ReturnConstant:
		return r.Constant, nil

	case ReturnIntRange:
		lo, hi := r.Int.Lo, r.Int.Hi
		if lo >= hi {
			return Value{}, ErrEmptyRange.With(slog.Int64("from", lo), slog.Int64("to", hi))
		}

		return IntValue(lo + int64(e.rand.Uint64N(uint64(hi)-uint64(lo)))), nil

	case ReturnFloatRange:
		lo, hi := r.Float.Lo, r.Float.Hi
		if !(lo < hi) {
			return Value{}, ErrEmptyRange.With(slog.Float64("from", lo), slog.Float64("to", hi))
		}

		v := lo + (hi-lo)*e.rand.Float64()
		if v >= hi {
			v = math.Nextafter(hi, lo)
		}

		return FloatValue(v), nil

	case ReturnSetRef:
		set, ok := sets[r.SetName]
		if !ok {
			return Value{}, suggest(
				ErrInvalidSet.With(slog.String("set", r.SetName)),
				r.SetName, setNames(sets)...,
			)
		}

		return e.choose(set, r.SetName)

	default:
		return e.choose(r.Set, "")
	}
}

func (e *Evaluator) choose(set Set, name string) (Value, error) {
	if len(set) == 0 {
		err := ErrEmptySet
		if name != "" {
			err = err.With(slog.String("set", name))
		}

		return Value{}, err
	}

	return set[e.rand.IntN(len(set))], nil
}
