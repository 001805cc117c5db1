package cmd

import (
	"context"

	"github.com/ardnew/randl/pkg"
)

// Fmt parses a document and prints it in the chosen format.
type Fmt struct {
	KDL  KDL  `cmd:"" default:"withargs" help:"Format as canonical KDL (default)."`
	YAML YAML `cmd:""                    help:"Format as YAML."`
	AST  AST  `cmd:""                    help:"Format as an indented outline."`
}

// KDL prints a document in canonical form.
type KDL struct {
	Source string `arg:"" default:"-" help:"Document file or '-' for stdin." name:"doc"`
}

// Run executes the fmt kdl command.
func (f *KDL) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := doc.Format(outputFrom(ctx)); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// YAML prints a document as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Document file or '-' for stdin." name:"doc"`
}

// Run executes the fmt yaml command.
func (f *YAML) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := doc.FormatYAML(ctx, outputFrom(ctx), f.Indent); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}

// AST prints the outline of a document.
type AST struct {
	Source string `arg:"" default:"-" help:"Document file or '-' for stdin." name:"doc"`
}

// Run executes the fmt ast command.
func (f *AST) Run(ctx context.Context) error {
	doc, err := readDocument(ctx, f.Source)
	if err != nil {
		return err
	}

	if err := doc.Print(outputFrom(ctx)); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
