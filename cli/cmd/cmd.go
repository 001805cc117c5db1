package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/randl/lang"
	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/pkg"
)

// stdio is the file name selecting standard input or output.
const stdio = "-"

const filePerm = 0o644

type (
	inputKey  struct{}
	outputKey struct{}
)

// WithInput returns a new context.Context whose commands read "-" from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a new context.Context whose commands write reports and
// "-" to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// readFile returns the contents of name, or of the context input when name
// is "-".
func readFile(ctx context.Context, name string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if name == stdio || name == "" {
		data, err = io.ReadAll(inputFrom(ctx))
	} else {
		data, err = os.ReadFile(name)
	}

	if err != nil {
		return nil, pkg.ErrReadInput.Wrapf("%s: %w", displayName(name), err)
	}

	return data, nil
}

// writeFile writes data to name, or to the context output when name is "-".
func writeFile(ctx context.Context, name string, data []byte) error {
	var err error

	if name == stdio || name == "" {
		_, err = outputFrom(ctx).Write(data)
	} else {
		err = os.WriteFile(name, data, filePerm)
	}

	if err != nil {
		return pkg.ErrWriteOutput.Wrapf("%s: %w", displayName(name), err)
	}

	return nil
}

// readDocument parses the document in name.
func readDocument(ctx context.Context, name string, opts ...lang.Option) (*lang.Document, error) {
	var r io.Reader = inputFrom(ctx)

	if name != stdio && name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, pkg.ErrReadInput.Wrapf("%s: %w", name, err)
		}
		defer f.Close()

		r = f
	}

	opts = append([]lang.Option{
		lang.WithLogger(log.With(slog.String("document", displayName(name)))),
	}, opts...)

	doc, err := lang.ParseReader(ctx, bufio.NewReader(r), opts...)
	if err != nil {
		return nil, ErrDocument.Wrapf("%s: %w", displayName(name), err)
	}

	return doc, nil
}

func displayName(name string) string {
	if name == stdio || name == "" {
		return "<stdin>"
	}

	return name
}
