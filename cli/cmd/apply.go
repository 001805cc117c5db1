package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/host"
	"github.com/ardnew/randl/lang"
	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/param"
	"github.com/ardnew/randl/pkg"
)

// Apply randomizes a param file with the entries of a document.
type Apply struct {
	Seed   uint64 `help:"Seed the random source (0 draws a random seed)" short:"s"`
	Target string `help:"Apply only the entries whose target is this file name" short:"t"`
	Where  string `help:"Apply only the entries matching this filter expression" short:"w"`
	Labels string `help:"CSV table of hash labels used for YAML keys" short:"l" type:"existingfile"`
	Indent int    `default:"2" help:"Indent width of the YAML output" short:"i"`

	Document string `arg:"" help:"Document file or '-' for stdin." name:"doc"`
	Input    string `arg:"" help:"YAML param file or '-' for stdin." name:"input"`
	Output   string `arg:"" default:"-" help:"Output file or '-' for stdout." name:"output" optional:""`
}

// Run executes the apply command.
func (a *Apply) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	codec, err := a.codec()
	if err != nil {
		return err
	}

	filter, err := host.CompileFilter(a.Where)
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx, a.Document)
	if err != nil {
		return err
	}

	data, err := readFile(ctx, a.Input)
	if err != nil {
		return err
	}

	if a.Target != "" {
		data, err = a.handle(ctx, doc, codec, filter, data)
	} else {
		data, err = a.applyAll(ctx, doc, codec, filter, data)
	}

	if err != nil {
		return err
	}

	return writeFile(ctx, a.Output, data)
}

func (a *Apply) codec() (param.YAML, error) {
	codec := param.YAML{Indent: a.Indent}

	if a.Labels == "" {
		return codec, nil
	}

	f, err := os.Open(a.Labels)
	if err != nil {
		return codec, ErrLabels.Wrap(err)
	}
	defer f.Close()

	if codec.Labels, err = hash40.ReadLabels(f); err != nil {
		return codec, ErrLabels.Wrap(err)
	}

	return codec, nil
}

// handle routes the input through a registry the way a host does for a
// loaded file named a.Target.
func (a *Apply) handle(
	ctx context.Context,
	doc *lang.Document,
	codec param.Codec,
	filter *host.Filter,
	data []byte,
) ([]byte, error) {
	reg, err := host.New(
		[]host.Source{{Doc: doc, Path: displayName(a.Document)}},
		host.WithCodec(codec),
		host.WithFilter(filter),
		host.WithSeed(a.Seed),
		host.WithLogger(log.Default()),
	)
	if err != nil {
		return nil, err
	}

	out, ok, err := reg.Handle(ctx, hash40.FromString(a.Target), data)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrNoRoute.Wrapf("%s", a.Target)
	}

	return out, nil
}

// applyAll applies every entry accepted by filter in document order.
func (a *Apply) applyAll(
	ctx context.Context,
	doc *lang.Document,
	codec param.Codec,
	filter *host.Filter,
	data []byte,
) ([]byte, error) {
	root, err := codec.Decode(data)
	if err != nil {
		return nil, pkg.ErrDecode.Wrap(err)
	}

	entries, err := matchEntries(doc, filter, displayName(a.Document))
	if err != nil {
		return nil, err
	}

	opts := []lang.Option{lang.WithLogger(log.Default())}
	if a.Seed != 0 {
		opts = append(opts, lang.WithSeed(a.Seed))
	}

	applier := lang.NewApplier(opts...)

	for _, i := range entries {
		if err := applier.Apply(ctx, doc.Entries[i], root, doc.Sets); err != nil {
			return nil, err
		}
	}

	log.DebugContext(ctx, "applied document",
		slog.String("document", displayName(a.Document)),
		slog.Int("entries", len(entries)),
	)

	out, err := codec.Encode(root)
	if err != nil {
		return nil, pkg.ErrEncode.Wrap(err)
	}

	return out, nil
}

// matchEntries returns the indices of the entries having at least one
// target accepted by filter.
func matchEntries(doc *lang.Document, filter *host.Filter, source string) ([]int, error) {
	var entries []int

	for i, target := range doc.Targets() {
		if n := len(entries); n > 0 && entries[n-1] == i {
			continue
		}

		ok, err := filter.Match(target, doc.Entries[i].Pattern, i, source)
		if err != nil {
			return nil, err
		}

		if ok {
			entries = append(entries, i)
		}
	}

	return entries, nil
}
