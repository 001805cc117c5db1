package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/ardnew/randl/log"
)

// loadConfig is a [kong.ConfigurationLoader] for configuration files written
// in KDL. Each top-level node names a flag and its argument is the flag's
// value:
//
//	log-level "debug"
//	log_pretty false
//	seed 42
//	where "target startsWith \"fighter/\""
//
// A flag given several arguments receives them as a list. Underscores in
// node names stand for hyphens. Files that do not parse are ignored with a
// warning, and command-line flags override configured values.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	doc, err := kdl.Parse(r)
	if err != nil {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}

	c := make(config, len(doc.Nodes))

	for _, node := range doc.Nodes {
		if node.Name == nil || len(node.Arguments) == 0 {
			continue
		}

		name := strings.ReplaceAll(node.Name.ValueString(), "_", "-")

		if len(node.Arguments) == 1 {
			c[name] = flagValue(node.Arguments[0])

			continue
		}

		list := make([]any, len(node.Arguments))
		for i, arg := range node.Arguments {
			list[i] = flagValue(arg)
		}

		c[name] = list
	}

	return c, nil
}

// flagValue converts a KDL argument into a value kong can decode. Numbers
// are passed as text since kong parses numeric flags from strings.
func flagValue(v *document.Value) any {
	switch x := v.ResolvedValue().(type) {
	case string, bool, nil:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// config implements [kong.Resolver] over flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	return nil, nil
}
