// Package cli contains the command line interface for randl.
//
// # Commands
//
//	randl apply DOC INPUT [OUTPUT]   randomize a param file
//	randl check DOC...               validate documents
//	randl targets [DOC...]           list the files documents edit
//	randl fmt [kdl|yaml|ast] DOC     print a document
//	randl init [NAME]                write a starter document
//
// Without DOC arguments, targets loads every document found in the search
// path: the document directory under the user configuration directory,
// followed by the directories listed in RANDL_PATH.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ...)
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorized output
//
// Logger flags take effect before the rest of the command line is parsed,
// wherever they appear.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o randl .
//
// It adds --pprof-mode and --pprof-dir (default ~/.cache/randl/pprof).
//
// # Configuration
//
// Default flag values are read from randl.json in the user configuration
// directory.
package cli
