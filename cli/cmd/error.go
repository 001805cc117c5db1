package cmd

import "github.com/ardnew/randl/pkg"

var (
	// ErrDocument is returned when a document cannot be read or parsed.
	ErrDocument = pkg.MakeErrorf("invalid document")
	// ErrNoRoute is returned when no entry targets the requested file.
	ErrNoRoute = pkg.MakeErrorf("no entry targets file")
	// ErrLabels is returned when a label table cannot be read.
	ErrLabels = pkg.MakeErrorf("invalid label table")
	// ErrFileExists is returned by init when the document already exists.
	ErrFileExists = pkg.MakeErrorf("file exists (use --force to overwrite)")
)
