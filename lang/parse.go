package lang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/sahilm/fuzzy"
	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/log"
)

// Names of the nodes recognized in a document.
const (
	nodeSet      = "set"
	nodeFile     = "file"
	nodeValue    = "value"
	nodeChance   = "chance"
	nodeReturn   = "return"
	nodeOriginal = "original"
)

// Names of the properties recognized in a document.
const (
	propHash40  = "hash40"
	propPercent = "percent"
	propFrom    = "from"
	propTo      = "to"
	propSet     = "set"
)

// Minimum sum of the percents of a chance list. Sums up to 0.1 short of 100
// are accepted to absorb rounding in hand-written documents.
const percentTolerance = 0.1

// ParseString compiles a document from its text.
func ParseString(ctx context.Context, text string, opts ...Option) (*Document, error) {
	return ParseReader(ctx, strings.NewReader(text), opts...)
}

// ParseReader compiles a document read from r.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, ErrSyntax.Wrap(err)
	}

	return ParseDocument(ctx, doc, opts...)
}

// ParseDocument compiles a document from a parsed KDL node tree.
func ParseDocument(ctx context.Context, doc *document.Document, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	p := &parser{ctx: ctx, logger: o.logger, maxDepth: o.maxDepth}

	d, err := p.document(doc.Nodes)
	if err != nil {
		return nil, err
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "document loaded",
		slog.Int("sets", len(d.Sets)),
		slog.Int("entries", len(d.Entries)),
	)

	return d, nil
}

type parser struct {
	ctx      context.Context
	logger   log.Logger
	trail    []string
	maxDepth int
}

// fail decorates err with the location of the node being parsed.
func (p *parser) fail(err *Error) *Error {
	if len(p.trail) == 0 {
		return err
	}

	return err.With(slog.String("node", strings.Join(p.trail, " > ")))
}

func (p *parser) enter(name string) { p.trail = append(p.trail, name) }

func (p *parser) leave() { p.trail = p.trail[:len(p.trail)-1] }

func (p *parser) document(nodes []*document.Node) (*Document, error) {
	d := &Document{Sets: make(map[string]Set)}

	for _, node := range nodes {
		switch name := nodeName(node); name {
		case nodeSet:
			setName, set, err := p.set(node)
			if err != nil {
				return nil, err
			}

			if _, dup := d.Sets[setName]; dup {
				p.logger.WarnContext(p.ctx, "set redeclared",
					slog.String("set", setName))
			}

			d.Sets[setName] = set

		case nodeFile:
			entry, err := p.entry(node)
			if err != nil {
				return nil, err
			}

			d.Entries = append(d.Entries, entry)

		default:
			return nil, p.fail(suggest(
				ErrInvalidEntry.With(slog.String("name", name)),
				name, nodeSet, nodeFile,
			).Wrap(errorf("entries must be %q or %q", nodeFile, nodeSet)))
		}
	}

	return d, nil
}

// label returns the single string argument of a set or file node.
func (p *parser) label(node *document.Node, what string) (string, error) {
	switch len(node.Arguments) {
	case 0:
		return "", p.fail(ErrInvalidEntry.Wrap(errorf("%s requires a name", what)))
	case 1:
		if s, ok := node.Arguments[0].ResolvedValue().(string); ok {
			return s, nil
		}

		return "", p.fail(ErrInvalidEntry.Wrap(errorf("%s name must be a string", what)))
	default:
		return "", p.fail(ErrInvalidEntry.Wrap(errorf("%s accepts only one name", what)))
	}
}

func (p *parser) set(node *document.Node) (string, Set, error) {
	p.enter(nodeSet)
	defer p.leave()

	name, err := p.label(node, nodeSet)
	if err != nil {
		return "", nil, err
	}

	p.trail[len(p.trail)-1] = nodeSet + " " + strconv.Quote(name)

	set, err := p.values(node.Children)
	if err != nil {
		return "", nil, err
	}

	p.logger.TraceContext(p.ctx, "parsed set",
		slog.String("set", name),
		slog.Int("values", len(set)),
	)

	return name, set, nil
}

func (p *parser) values(nodes []*document.Node) (Set, error) {
	set := make(Set, 0, len(nodes))

	for i, node := range nodes {
		p.enter(nodeValue + "[" + strconv.Itoa(i) + "]")

		v, err := p.value(node)

		p.leave()

		if err != nil {
			return nil, err
		}

		set = append(set, v)
	}

	return set, nil
}

// value parses a set member: "value <scalar>" or "value hash40=<name|int>".
func (p *parser) value(node *document.Node) (Value, error) {
	if name := nodeName(node); name != nodeValue {
		return Value{}, p.fail(ErrNonValueInSet.With(slog.String("name", name)))
	}

	if len(node.Children) > 0 {
		return Value{}, p.fail(ErrInvalidValue.Wrap(errorf("value cannot have children")))
	}

	switch len(node.Arguments) {
	case 0:
		if len(node.Properties) != 1 || node.Properties[propHash40] == nil {
			return Value{}, p.fail(ErrInvalidValue.Wrap(errorf(
				"syntax is `value <int|float|string|bool>` or `value hash40=<string|int>`")))
		}

		return p.hash(node.Properties[propHash40].ResolvedValue(), ErrInvalidValue)

	case 1:
		if len(node.Properties) > 0 {
			return Value{}, p.fail(ErrInvalidValue.Wrap(errorf(
				"value cannot have both properties and arguments")))
		}

		return p.scalar(node.Arguments[0].ResolvedValue())

	default:
		return Value{}, p.fail(ErrInvalidValue.Wrap(errorf(
			"value cannot have more than one argument")))
	}
}

// scalar converts a KDL argument to a Value.
func (p *parser) scalar(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, p.fail(ErrInvalidType.Wrap(errorf("null is not a value")))
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	}

	if i, ok := toInt(v); ok {
		return IntValue(i), nil
	}

	if f, ok := toFloat(v); ok {
		return FloatValue(f), nil
	}

	return Value{}, p.fail(ErrInvalidType.Wrap(errorf("unsupported value %v", v)))
}

// hash converts the value of a hash40 property. Strings are hashed and
// integers are used as raw hashes.
func (p *parser) hash(v any, sentinel *Error) (Value, error) {
	if s, ok := v.(string); ok {
		return HashValue(hash40.FromString(s)), nil
	}

	if i, ok := toInt(v); ok {
		return HashValue(hash40.New(uint64(i))), nil
	}

	return Value{}, p.fail(sentinel.Wrap(errorf(
		"%s must be a string or an integer", propHash40)))
}

func (p *parser) entry(node *document.Node) (*Entry, error) {
	p.enter(nodeFile)
	defer p.leave()

	pattern, err := p.label(node, nodeFile)
	if err != nil {
		return nil, err
	}

	p.trail[len(p.trail)-1] = nodeFile + " " + strconv.Quote(pattern)

	entry := &Entry{Pattern: pattern, Edits: make([]Edit, 0, len(node.Children))}

	for _, child := range node.Children {
		edit, err := p.edit(child)
		if err != nil {
			return nil, err
		}

		entry.Edits = append(entry.Edits, edit)
	}

	p.logger.TraceContext(p.ctx, "parsed entry",
		slog.String("pattern", pattern),
		slog.Int("edits", len(entry.Edits)),
	)

	return entry, nil
}

func (p *parser) edit(node *document.Node) (Edit, error) {
	name := nodeName(node)

	p.enter(name)
	defer p.leave()

	path, err := ParsePath(name)
	if err != nil {
		return Edit{}, p.fail(WrapError(err))
	}

	expr, err := p.expr(node.Children, 0)
	if err != nil {
		return Edit{}, err
	}

	return Edit{Path: path, Expr: expr}, nil
}

// expr parses the children of an edit or chance node.
func (p *parser) expr(nodes []*document.Node, depth int) (*Expr, error) {
	if depth >= p.maxDepth {
		return nil, p.fail(ErrMaxDepthExceeded.With(slog.Int("max", p.maxDepth)))
	}

	if len(nodes) == 0 {
		return nil, p.fail(ErrExprRequired)
	}

	first := nodeName(nodes[0])

	switch {
	case first == nodeChance:
		return p.random(nodes, depth)

	case len(nodes) > 1:
		return nil, p.fail(ErrTooManyExprs.With(slog.Int("count", len(nodes))).
			Wrap(errorf("only %s expressions may be repeated", nodeChance)))

	case first == nodeOriginal:
		return &Expr{Kind: ExprOriginal}, nil

	case first == nodeReturn:
		p.enter(nodeReturn)
		defer p.leave()

		ret, err := p.ret(nodes[0])
		if err != nil {
			return nil, err
		}

		return &Expr{Kind: ExprReturn, Return: ret}, nil

	default:
		return nil, p.fail(suggest(
			ErrInvalidExpr.With(slog.String("name", first)),
			first, nodeChance, nodeReturn, nodeOriginal,
		).Wrap(errorf("%q is not an expression", first)))
	}
}

func (p *parser) random(nodes []*document.Node, depth int) (*Expr, error) {
	chances := make([]Chance, 0, len(nodes))

	var total float64

	for i, node := range nodes {
		if name := nodeName(node); name != nodeChance {
			return nil, p.fail(ErrMixedExprs.With(slog.String("name", name)))
		}

		p.enter(nodeChance + "[" + strconv.Itoa(i) + "]")

		c, err := p.chance(node, depth)

		p.leave()

		if err != nil {
			return nil, err
		}

		total += c.Percent
		chances = append(chances, c)
	}

	if 100-total > percentTolerance {
		return nil, p.fail(ErrInvalidChance.With(slog.Float64("total", total)).
			Wrap(errorf("percents must add up to at least %g", 100-percentTolerance)))
	}

	return &Expr{Kind: ExprRandom, Chances: chances}, nil
}

func (p *parser) chance(node *document.Node, depth int) (Chance, error) {
	prop := node.Properties[propPercent]
	if prop == nil {
		return Chance{}, p.fail(ErrNoPercent)
	}

	percent, ok := toFloat(prop.ResolvedValue())
	if !ok || math.IsNaN(percent) || percent < 0 {
		return Chance{}, p.fail(ErrInvalidChance.Wrap(errorf(
			"%s must be a non-negative integer or float", propPercent)))
	}

	expr, err := p.expr(node.Children, depth+1)
	if err != nil {
		return Chance{}, err
	}

	return Chance{Percent: percent, Expr: expr}, nil
}

// ret parses a return node. The accepted shapes are mutually exclusive:
//
//	return <scalar>
//	return from=<num> to=<num>
//	return hash40=<string|int>
//	return set=<string>
//	return { value ...; value ... }
func (p *parser) ret(node *document.Node) (*Return, error) {
	args, props := node.Arguments, node.Properties

	if len(node.Children) > 0 {
		if len(props) > 0 || len(args) > 0 {
			return nil, p.fail(ErrInvalidReturn.Wrap(errorf(
				"return with children cannot have properties or arguments")))
		}

		set, err := p.values(node.Children)
		if err != nil {
			return nil, err
		}

		return &Return{Kind: ReturnSet, Set: set}, nil
	}

	if len(props) == 0 {
		switch len(args) {
		case 0:
			return nil, p.fail(ErrInvalidReturn.Wrap(errorf(
				"return requires children, properties or an argument")))
		case 1:
			v, err := p.scalar(args[0].ResolvedValue())
			if err != nil {
				return nil, err
			}

			return &Return{Kind: ReturnConstant, Constant: v}, nil
		default:
			return nil, p.fail(ErrInvalidReturn.Wrap(errorf(
				"return cannot have more than one argument")))
		}
	}

	if len(args) > 0 {
		return nil, p.fail(ErrInvalidReturn.Wrap(errorf(
			"return cannot have both properties and arguments")))
	}

	keys := slices.Sorted(maps.Keys(props))

	switch strings.Join(keys, ",") {
	case propFrom + "," + propTo:
		return p.rng(props[propFrom].ResolvedValue(), props[propTo].ResolvedValue())

	case propHash40:
		v, err := p.hash(props[propHash40].ResolvedValue(), ErrInvalidReturn)
		if err != nil {
			return nil, err
		}

		return &Return{Kind: ReturnConstant, Constant: v}, nil

	case propSet:
		name, ok := props[propSet].ResolvedValue().(string)
		if !ok {
			return nil, p.fail(ErrInvalidReturn.Wrap(errorf("%s must be a string", propSet)))
		}

		return &Return{Kind: ReturnSetRef, SetName: name}, nil

	case propFrom:
		return nil, p.fail(ErrInvalidReturn.Wrap(errorf("range is missing %q", propTo)))

	case propTo:
		return nil, p.fail(ErrInvalidReturn.Wrap(errorf("range is missing %q", propFrom)))

	default:
		return nil, p.fail(ErrInvalidReturn.With(slog.Any("properties", keys)).
			Wrap(errorf("return accepts %s and %s, %s, or %s",
				propFrom, propTo, propHash40, propSet)))
	}
}

// rng builds an integer range when both bounds are integers and a float
// range otherwise.
func (p *parser) rng(from, to any) (*Return, error) {
	lo, loInt := toInt(from)
	hi, hiInt := toInt(to)

	if loInt && hiInt {
		return &Return{Kind: ReturnIntRange, Int: IntRange{Lo: lo, Hi: hi}}, nil
	}

	flo, ok1 := toFloat(from)
	fhi, ok2 := toFloat(to)

	if !ok1 || !ok2 {
		return nil, p.fail(ErrInvalidReturn.Wrap(errorf(
			"range bounds must be integers or floats")))
	}

	return &Return{Kind: ReturnFloatRange, Float: FloatRange{Lo: flo, Hi: fhi}}, nil
}

func nodeName(node *document.Node) string {
	if node.Name == nil {
		return ""
	}

	return node.Name.ValueString()
}

// toInt converts a KDL integer.
func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int64:
		return x, true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}

		return int64(x), true
	case *big.Int:
		if !x.IsInt64() {
			return 0, false
		}

		return x.Int64(), true
	default:
		return 0, false
	}
}

// toFloat converts any KDL number.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case *big.Float:
		f, _ := x.Float64()

		return f, true
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()

		return f, true
	}

	if i, ok := toInt(v); ok {
		return float64(i), true
	}

	return 0, false
}

// suggest attaches the closest of the candidates to name, if any.
// Abbreviations are matched first. Otherwise the candidate with the fewest
// edits wins, provided at most a third of name had to change.
func suggest(err *Error, name string, candidates ...string) *Error {
	if name == "" {
		return err
	}

	if m := fuzzy.Find(name, candidates); len(m) > 0 {
		return err.With(slog.String("suggest", m[0].Str))
	}

	best, limit := "", max(1, utf8.RuneCountInString(name)/3)

	for _, c := range candidates {
		if d := levenshtein.Distance(name, c, nil); d <= limit {
			best, limit = c, d-1
		}
	}

	if best != "" {
		return err.With(slog.String("suggest", best))
	}

	return err
}

func errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
