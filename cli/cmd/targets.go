package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/randl/host"
	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/pkg"
)

// Targets lists every file the documents edit, with its hash.
type Targets struct {
	Where string `help:"List only the targets matching this filter expression" short:"w"`
	Dir   string `default:"${documentDir}" help:"Document directory searched when no document is given" type:"path"`

	Documents []string `arg:"" help:"Document files; defaults to the search path." name:"doc" optional:""`
}

// Run executes the targets command.
func (t *Targets) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := t.sources(ctx)
	if err != nil {
		return err
	}

	filter, err := host.CompileFilter(t.Where)
	if err != nil {
		return err
	}

	reg, err := host.New(sources,
		host.WithFilter(filter),
		host.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	out := outputFrom(ctx)
	r := lipgloss.NewRenderer(out)

	var (
		hashStyle   = r.NewStyle().Foreground(lipgloss.Color("3"))
		targetStyle = r.NewStyle().Bold(true)
		sourceStyle = r.NewStyle().Foreground(lipgloss.Color("8"))
	)

	for h, routes := range reg.All() {
		for _, route := range routes {
			_, err := fmt.Fprintln(out,
				hashStyle.Render(h.String()),
				targetStyle.Render(route.Target),
				sourceStyle.Render(route.Source.Path+"#"+strconv.Itoa(route.Entry)),
			)
			if err != nil {
				return pkg.ErrWriteOutput.Wrap(err)
			}
		}
	}

	return nil
}

// sources parses the named documents, or loads the search path when none
// are named.
func (t *Targets) sources(ctx context.Context) ([]host.Source, error) {
	if len(t.Documents) == 0 {
		cfg, err := host.ReadConfig()
		if err != nil {
			return nil, err
		}

		return host.Load(ctx, cfg, []string{t.Dir}, host.WithLogger(log.Default()))
	}

	sources := make([]host.Source, 0, len(t.Documents))

	for _, name := range t.Documents {
		doc, err := readDocument(ctx, name)
		if err != nil {
			return nil, err
		}

		sources = append(sources, host.Source{Doc: doc, Path: displayName(name)})
	}

	return sources, nil
}
