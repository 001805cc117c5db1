package lang

import (
	"log/slog"
	"strconv"

	"github.com/ardnew/randl/param"
)

// Locator addresses one node of a param tree by its container and slot, so
// that resolving a path never holds a reference into the tree that could be
// invalidated by a later edit.
type Locator struct {
	Owner *param.Node // nil for the root
	Path  string      // concrete dotted path, for diagnostics
	Slot  int
}

// Node returns the node addressed by l within the tree rooted at root.
func (l Locator) Node(root *param.Node) *param.Node {
	if l.Owner == nil {
		return root
	}

	return l.Owner.Child(l.Slot)
}

// Store replaces the node addressed by l with n.
func (l Locator) Store(root, n *param.Node) {
	if l.Owner == nil {
		*root = *n

		return
	}

	l.Owner.Replace(l.Slot, n)
}

// Resolve returns a locator for every node of root addressed by path, in
// depth-first order. Resolution is all or nothing: the first component that
// cannot be followed from any node aborts with an error and no locators.
func Resolve(path Path, root *param.Node) ([]Locator, error) {
	frontier := []Locator{{}}

	for step, c := range path {
		next := make([]Locator, 0, len(frontier))

		for _, loc := range frontier {
			node := loc.Node(root)

			expanded, err := follow(loc, node, c)
			if err != nil {
				return nil, err.With(
					pathAttr(path.String()),
					slog.Int("step", step),
				)
			}

			next = append(next, expanded...)
		}

		frontier = next
	}

	return frontier, nil
}

// follow expands loc by one path component.
func follow(loc Locator, node *param.Node, c Component) ([]Locator, *Error) {
	at := func(slot int, seg string) Locator {
		p := seg
		if loc.Path != "" {
			p = loc.Path + "." + seg
		}

		return Locator{Owner: node, Slot: slot, Path: p}
	}

	switch c.Kind {
	case ComponentField:
		if node.Kind != param.Struct {
			return nil, ErrInvalidField.With(slog.String("at", loc.Path)).
				Wrap(errorf("cannot get field %q of %s", c.Name, node.Kind))
		}

		slot, ok := node.Lookup(c.Hash)
		if !ok {
			return nil, ErrMissingField.With(
				slog.String("at", loc.Path),
				slog.String("field", c.Name),
			)
		}

		return []Locator{at(slot, c.Name)}, nil

	case ComponentIndex:
		if node.Kind != param.List {
			return nil, ErrInvalidField.With(slog.String("at", loc.Path)).
				Wrap(errorf("cannot index into %s", node.Kind))
		}

		if c.Index >= node.Len() {
			return nil, ErrIndexOutOfBounds.With(
				slog.String("at", loc.Path),
				slog.Int("index", c.Index),
				slog.Int("len", node.Len()),
			)
		}

		return []Locator{at(c.Index, strconv.Itoa(c.Index))}, nil

	default:
		if !node.Kind.IsContainer() {
			return nil, ErrInvalidField.With(slog.String("at", loc.Path)).
				Wrap(errorf("wildcard cannot expand %s", node.Kind))
		}

		locs := make([]Locator, node.Len())
		for i := range locs {
			seg := strconv.Itoa(i)
			if node.Kind == param.Struct {
				seg = node.Fields[i].Hash.String()
			}

			locs[i] = at(i, seg)
		}

		return locs, nil
	}
}
