package lang

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// Print writes an indented outline of d to w.
func (d *Document) Print(w io.Writer) error {
	b := bufio.NewWriter(w)

	for _, name := range slices.Sorted(maps.Keys(d.Sets)) {
		set := d.Sets[name]
		fmt.Fprintf(b, "set %s (%d)\n", strconv.Quote(name), len(set))

		for _, v := range set {
			fmt.Fprintf(b, "  %s\n", literal(v))
		}
	}

	for _, e := range d.Entries {
		fmt.Fprintf(b, "file %s\n", strconv.Quote(e.Pattern))

		for _, edit := range e.Edits {
			fmt.Fprintf(b, "  %s\n", edit.Path)
			printExpr(b, edit.Expr, "    ")
		}
	}

	return b.Flush()
}

func printExpr(b *bufio.Writer, x *Expr, indent string) {
	switch x.Kind {
	case ExprOriginal:
		fmt.Fprintf(b, "%soriginal\n", indent)

	case ExprReturn:
		fmt.Fprintf(b, "%sreturn %s\n", indent, x.Return)

	default:
		for _, c := range x.Chances {
			fmt.Fprintf(b, "%schance %g%%\n", indent, c.Percent)
			printExpr(b, c.Expr, indent+"  ")
		}
	}
}

func (r *Return) String() string {
	switch r.Kind {
	case ReturnConstant:
		return literal(r.Constant)
	case ReturnIntRange:
		return fmt.Sprintf("[%d, %d)", r.Int.Lo, r.Int.Hi)
	case ReturnFloatRange:
		return fmt.Sprintf("[%g, %g)", r.Float.Lo, r.Float.Hi)
	case ReturnSetRef:
		return "set " + strconv.Quote(r.SetName)
	default:
		vals := make([]string, len(r.Set))
		for i, v := range r.Set {
			vals[i] = literal(v)
		}

		return "{" + strings.Join(vals, ", ") + "}"
	}
}

// literal formats v the way it is written in a document.
func literal(v Value) string {
	switch v.Kind {
	case KindString, KindFloat:
		return (&document.Value{Value: kdlValue(v)}).FormattedString()
	case KindHash:
		return propHash40 + "=" + v.Hash.String()
	default:
		return v.String()
	}
}

// FormatYAML writes d to w as YAML.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	sets := make(yaml.MapSlice, 0, len(d.Sets))
	for _, name := range slices.Sorted(maps.Keys(d.Sets)) {
		sets = append(sets, yaml.MapItem{Key: name, Value: yamlSet(d.Sets[name])})
	}

	files := make([]any, len(d.Entries))
	for i, e := range d.Entries {
		edits := make([]any, len(e.Edits))
		for j, edit := range e.Edits {
			edits[j] = yaml.MapSlice{
				{Key: "path", Value: edit.Path.String()},
				{Key: "expr", Value: yamlExpr(edit.Expr)},
			}
		}

		files[i] = yaml.MapSlice{
			{Key: "pattern", Value: e.Pattern},
			{Key: "edits", Value: edits},
		}
	}

	out, err := yaml.MarshalContext(ctx, yaml.MapSlice{
		{Key: "sets", Value: sets},
		{Key: "files", Value: files},
	}, yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return err
	}

	_, err = w.Write(out)

	return err
}

func yamlExpr(x *Expr) any {
	switch x.Kind {
	case ExprOriginal:
		return nodeOriginal

	case ExprReturn:
		return yaml.MapSlice{{Key: nodeReturn, Value: yamlReturn(x.Return)}}

	default:
		chances := make([]any, len(x.Chances))
		for i, c := range x.Chances {
			chances[i] = yaml.MapSlice{
				{Key: propPercent, Value: c.Percent},
				{Key: "expr", Value: yamlExpr(c.Expr)},
			}
		}

		return yaml.MapSlice{{Key: nodeChance, Value: chances}}
	}
}

func yamlReturn(r *Return) any {
	switch r.Kind {
	case ReturnConstant:
		return yamlValue(r.Constant)
	case ReturnIntRange:
		return yaml.MapSlice{{Key: propFrom, Value: r.Int.Lo}, {Key: propTo, Value: r.Int.Hi}}
	case ReturnFloatRange:
		return yaml.MapSlice{{Key: propFrom, Value: r.Float.Lo}, {Key: propTo, Value: r.Float.Hi}}
	case ReturnSetRef:
		return yaml.MapSlice{{Key: propSet, Value: r.SetName}}
	default:
		return yaml.MapSlice{{Key: "values", Value: yamlSet(r.Set)}}
	}
}

func yamlSet(set Set) []any {
	vals := make([]any, len(set))
	for i, v := range set {
		vals[i] = yamlValue(v)
	}

	return vals
}

func yamlValue(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	case KindHash:
		return yaml.MapSlice{{Key: propHash40, Value: v.Hash.String()}}
	default:
		return v.Kind.String()
	}
}

// Format writes d to w as KDL that parses back to an equal document.
// Sets are written first, sorted by name.
//
// A string holding a control character other than \n, \r, \t, \b or \f
// cannot be written, and neither can an edit path that reads as a signed
// number. Format returns [ErrUnformattable] for both and writes nothing.
func (d *Document) Format(w io.Writer) error {
	out := document.New()

	for _, name := range slices.Sorted(maps.Keys(d.Sets)) {
		n := kdlNode(nodeSet, name)
		kdlValues(n, d.Sets[name])
		out.AddNode(n)
	}

	for _, e := range d.Entries {
		n := kdlNode(nodeFile, e.Pattern)

		for _, edit := range e.Edits {
			c := kdlNode(edit.Path.String())
			c.Children = kdlExpr(edit.Expr)
			n.AddNode(c)
		}

		out.AddNode(n)
	}

	if err := checkNodes(out.Nodes); err != nil {
		return err
	}

	return kdl.Generate(out, w)
}

func kdlNode(name string, args ...any) *document.Node {
	n := document.NewNode()
	n.SetName(name)

	for _, a := range args {
		n.AddArgument(a, "")
	}

	return n
}

func kdlExpr(x *Expr) []*document.Node {
	switch x.Kind {
	case ExprOriginal:
		return []*document.Node{kdlNode(nodeOriginal)}

	case ExprReturn:
		n := kdlNode(nodeReturn)

		r := x.Return
		switch r.Kind {
		case ReturnConstant:
			kdlArgument(n, r.Constant)
		case ReturnIntRange:
			n.AddProperty(propFrom, r.Int.Lo, "")
			n.AddProperty(propTo, r.Int.Hi, "")
		case ReturnFloatRange:
			n.AddProperty(propFrom, r.Float.Lo, "")
			n.AddProperty(propTo, r.Float.Hi, "")
		case ReturnSetRef:
			n.AddProperty(propSet, r.SetName, "")
		default:
			kdlValues(n, r.Set)
		}

		return []*document.Node{n}

	default:
		nodes := make([]*document.Node, len(x.Chances))
		for i, c := range x.Chances {
			nodes[i] = kdlNode(nodeChance)
			nodes[i].AddProperty(propPercent, c.Percent, "")
			nodes[i].Children = kdlExpr(c.Expr)
		}

		return nodes
	}
}

// kdlValues adds a value child to n for each element of set.
func kdlValues(n *document.Node, set Set) {
	for _, v := range set {
		c := kdlNode(nodeValue)
		kdlArgument(c, v)
		n.AddNode(c)
	}
}

// kdlArgument adds v to n as an argument, or as a hexadecimal hash40
// property for hashes.
func kdlArgument(n *document.Node, v Value) {
	if v.Kind == KindHash {
		n.AddProperty(propHash40, int64(v.Hash), "").Flag = document.FlagHexadecimal

		return
	}

	n.AddArgument(kdlValue(v), "")
}

func kdlValue(v Value) any {
	switch v.Kind {
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	default:
		return v.String()
	}
}

// checkNodes reports the first name or string in nodes that would not read
// back as written.
func checkNodes(nodes []*document.Node) error {
	for _, n := range nodes {
		name := n.Name.ValueString()
		if len(name) > 1 && strings.ContainsRune("+-", rune(name[0])) &&
			name[1] >= '0' && name[1] <= '9' {
			return ErrUnformattable.With(slog.String("name", name))
		}

		values := slices.Concat([]*document.Value{n.Name}, n.Arguments,
			slices.Collect(maps.Values(n.Properties.Unordered())))

		for _, v := range values {
			if s, ok := v.Value.(string); ok && strings.ContainsFunc(s, unescaped) {
				return ErrUnformattable.With(slog.String("string", strconv.Quote(s)))
			}
		}

		if err := checkNodes(n.Children); err != nil {
			return err
		}
	}

	return nil
}

// unescaped reports whether the generator has no escape for r that its
// parser accepts.
func unescaped(r rune) bool {
	switch r {
	case '\n', '\r', '\t', '\b', '\f':
		return false
	}

	return r < 0x20 || r == 0x7f
}
