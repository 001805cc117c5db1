package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/pkg"
)

// Check parses documents and reports what each one declares.
type Check struct {
	Documents []string `arg:"" help:"Document files or '-' for stdin." name:"doc"`
}

// Run executes the check command. It stops at the first invalid document.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := outputFrom(ctx)

	for _, name := range c.Documents {
		doc, err := readDocument(ctx, name)
		if err != nil {
			return err
		}

		var targets int
		for range doc.Targets() {
			targets++
		}

		log.DebugContext(ctx, "document ok", slog.String("document", displayName(name)))

		_, err = fmt.Fprintf(out, "%s: %d sets, %d entries, %d targets\n",
			displayName(name), len(doc.Sets), len(doc.Entries), targets)
		if err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
