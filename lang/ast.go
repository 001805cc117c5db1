package lang

import (
	"iter"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/log"
)

// Document is a compiled randl document. It is not modified after it is
// built and may be shared by concurrent appliers.
type Document struct {
	Sets    map[string]Set
	Entries []*Entry
}

// Entry is the list of edits applied to files whose name matches Pattern.
// Pattern holds at most one "{set}" placeholder, see [Entry.Targets].
type Entry struct {
	Pattern string
	Edits   []Edit
}

// Edit assigns the result of Expr to every leaf addressed by Path.
type Edit struct {
	Expr *Expr
	Path Path
}

// ComponentKind identifies the variant of a path [Component].
type ComponentKind uint8

const (
	ComponentField ComponentKind = iota
	ComponentIndex
	ComponentWildcard
)

// Component is one dot-separated segment of a [Path].
type Component struct {
	Name  string        // segment text of a field
	Hash  hash40.Hash40 // field key
	Index int
	Kind  ComponentKind
}

// Path addresses leaves of a param tree.
type Path []Component

// ParsePath splits s on dots. An all-digit segment is a list index, "*" is
// a wildcard and anything else is a struct field. A field written as "0x"
// followed by hex digits is a raw hash rather than a name.
func ParsePath(s string) (Path, error) {
	segs := strings.Split(s, ".")
	path := make(Path, 0, len(segs))

	for _, seg := range segs {
		switch {
		case seg == "":
			return nil, ErrInvalidPath.With(pathAttr(s)).
				Wrap(errEmptySegment)

		case seg == "*":
			path = append(path, Component{Kind: ComponentWildcard})

		case isDigits(seg):
			n, err := strconv.Atoi(seg)
			if err != nil {
				return nil, ErrInvalidPath.With(pathAttr(s)).Wrap(err)
			}

			path = append(path, Component{Kind: ComponentIndex, Index: n})

		default:
			h, err := hash40.Parse(seg)
			if err != nil {
				return nil, ErrInvalidPath.With(pathAttr(s)).Wrap(err)
			}

			path = append(path, Component{Kind: ComponentField, Name: seg, Hash: h})
		}
	}

	return path, nil
}

// MustParsePath is like [ParsePath] but panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

func (c Component) String() string {
	switch c.Kind {
	case ComponentIndex:
		return strconv.Itoa(c.Index)
	case ComponentWildcard:
		return "*"
	default:
		return c.Name
	}
}

func (p Path) String() string {
	segs := make([]string, len(p))
	for i, c := range p {
		segs[i] = c.String()
	}

	return strings.Join(segs, ".")
}

// ExprKind identifies the variant of an [Expr].
type ExprKind uint8

const (
	ExprReturn ExprKind = iota
	ExprRandom
	ExprOriginal
)

// Expr produces one [Value] each time it is evaluated.
type Expr struct {
	Return  *Return  // ExprReturn
	Chances []Chance // ExprRandom
	Kind    ExprKind
}

// Chance is one weighted branch of a random expression.
type Chance struct {
	Expr    *Expr
	Percent float64
}

// ReturnKind identifies the variant of a [Return].
type ReturnKind uint8

const (
	ReturnConstant ReturnKind = iota
	ReturnIntRange
	ReturnFloatRange
	ReturnSetRef
	ReturnSet
)

// Return is the leaf form of an expression.
type Return struct {
	SetName  string // ReturnSetRef
	Set      Set    // ReturnSet
	Constant Value  // ReturnConstant
	Int      IntRange
	Float    FloatRange
	Kind     ReturnKind
}

// IntRange is the half-open interval [Lo, Hi) of integers.
type IntRange struct{ Lo, Hi int64 }

// FloatRange is the half-open interval [Lo, Hi) of reals.
type FloatRange struct{ Lo, Hi float64 }

// Targets returns each entry's expanded file names paired with the entry's
// index, in document order. Parsed documents always expand. An entry of a
// document built in code whose template does not expand is logged and
// skipped.
func (d *Document) Targets() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, e := range d.Entries {
			names, err := e.Targets(d.Sets)
			if err != nil {
				log.Warn("skipping entry",
					slog.Int("entry", i),
					slog.Any("error", err),
				)

				continue
			}

			for _, name := range names {
				if !yield(i, name) {
					return
				}
			}
		}
	}
}

// Match returns the indices of the entries whose expanded names include
// target.
func (d *Document) Match(target string) []int {
	var idx []int

	for i, name := range d.Targets() {
		if name == target && (len(idx) == 0 || idx[len(idx)-1] != i) {
			idx = append(idx, i)
		}
	}

	return idx
}
