package host

import (
	"os"
	"path/filepath"

	"github.com/ardnew/mung"
	"github.com/caarlos0/env/v11"

	"github.com/ardnew/randl/pkg"
)

// Config describes where documents are found and how they are used.
type Config struct {
	// Path lists directories searched for documents, separated by the
	// platform's path list separator.
	Path string `env:"RANDL_PATH"`
	// Ext is the extension of document files.
	Ext string `env:"RANDL_EXT" envDefault:".kdl"`
	// Filter is an expression selecting which targets are registered.
	Filter string `env:"RANDL_FILTER"`
	// Seed pins the random source when non-zero.
	Seed uint64 `env:"RANDL_SEED"`
}

// ReadConfig reads a Config from the environment.
func ReadConfig() (Config, error) {
	var c Config

	if err := env.Parse(&c); err != nil {
		return Config{}, pkg.ErrConfig.Wrap(err)
	}

	return c, nil
}

// Dirs returns the search path with dirs placed ahead of the configured
// directories. Empty entries are dropped.
func (c Config) Dirs(dirs ...string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(c.Path),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
	).String()

	var out []string

	for _, dir := range filepath.SplitList(joined) {
		if dir != "" {
			out = append(out, dir)
		}
	}

	return out
}
