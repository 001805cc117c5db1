package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/param"
)

// Applier edits param trees. It is not safe for concurrent use because its
// [Evaluator] owns a random source.
type Applier struct {
	eval   *Evaluator
	logger log.Logger
}

// NewApplier returns an Applier configured by opts.
func NewApplier(opts ...Option) *Applier {
	o := makeOptions(opts...)

	return &Applier{eval: &Evaluator{rand: o.rand}, logger: o.logger}
}

// Apply performs the edits of entry on root in order. Each addressed leaf is
// assigned a value drawn independently. Leaves assigned [Original] are left
// unchanged.
//
// The first failing edit stops the call and returns an error. Edits made
// before it remain in the tree, but an edit whose path cannot be resolved
// changes nothing.
func (a *Applier) Apply(ctx context.Context, entry *Entry, root *param.Node, sets map[string]Set) error {
	for _, edit := range entry.Edits {
		if err := a.edit(ctx, edit, root, sets); err != nil {
			return WrapError(err).With(slog.String("entry", entry.Pattern))
		}
	}

	a.logger.DebugContext(ctx, "entry applied",
		slog.String("entry", entry.Pattern),
		slog.Int("edits", len(entry.Edits)),
	)

	return nil
}

func (a *Applier) edit(ctx context.Context, edit Edit, root *param.Node, sets map[string]Set) error {
	locs, err := Resolve(edit.Path, root)
	if err != nil {
		return err
	}

	for _, loc := range locs {
		v, err := a.eval.Eval(edit.Expr, sets)
		if err != nil {
			return WrapError(err).With(pathAttr(loc.Path))
		}

		if v.IsOriginal() {
			continue
		}

		n, err := Coerce(loc.Node(root).Kind, v)
		if err != nil {
			return WrapError(err).With(pathAttr(loc.Path))
		}

		loc.Store(root, n)

		a.logger.TraceContext(ctx, "assigned",
			pathAttr(loc.Path),
			slog.String("value", v.String()),
		)
	}

	return nil
}

// Apply applies the entry at index i to root using the document's sets.
func (d *Document) Apply(ctx context.Context, i int, root *param.Node, opts ...Option) error {
	if i < 0 || i >= len(d.Entries) {
		return ErrEntryNotFound.With(slog.Int("index", i))
	}

	return NewApplier(opts...).Apply(ctx, d.Entries[i], root, d.Sets)
}

// ApplyTarget applies, in document order, every entry whose expanded file
// names include target. It returns the number of entries applied, and
// [ErrEntryNotFound] when none match.
func (d *Document) ApplyTarget(ctx context.Context, target string, root *param.Node, opts ...Option) (int, error) {
	idx := d.Match(target)
	if len(idx) == 0 {
		return 0, ErrEntryNotFound.With(slog.String("target", target))
	}

	a := NewApplier(opts...)

	for n, i := range idx {
		if err := a.Apply(ctx, d.Entries[i], root, d.Sets); err != nil {
			return n, err
		}
	}

	return len(idx), nil
}
