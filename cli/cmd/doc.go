// Package cmd implements the randl subcommands.
package cmd

// DocumentDirIdentifier is the kong variable identifier containing the path
// of the default document directory.
const DocumentDirIdentifier = "documentDir"
