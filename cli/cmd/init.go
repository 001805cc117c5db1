package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/randl/log"
	"github.com/ardnew/randl/pkg"
)

// starter is the document written by init. It parses without error and
// demonstrates each kind of return.
const starter = `// Sets are named lists of values. A return or a file pattern may refer to
// a set by name.
set "costumes" {
    value "c00"
    value "c01"
    value "c02"
}

set "effects" {
    value hash40="collision_attr_fire"
    value hash40="collision_attr_elec"
    value hash40="collision_attr_ice"
}

// A "{set}" placeholder expands to one target per value.
file "fighter/mario/{costumes}/param.prc" {
    walk_speed {
        return from=0.8 to=1.6
    }
    jump_count {
        chance percent=90 {
            original
        }
        chance percent=10 {
            return from=1 to=4
        }
    }
    "attacks.*.effect" {
        return set="effects"
    }
    name {
        return {
            value "Mario"
            value "Jumpman"
        }
    }
}
`

// Init writes a starter document.
type Init struct {
	Force bool   `help:"Overwrite an existing document" short:"f"`
	Dir   string `default:"${documentDir}" help:"Directory the document is written to" type:"path"`

	Name string `arg:"" default:"randl" help:"Base name of the document." name:"name"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	name := i.Name
	if !strings.HasSuffix(name, pkg.DocumentExt) {
		name += pkg.DocumentExt
	}

	path := filepath.Join(i.Dir, name)

	_, err = os.Stat(path)

	switch {
	case err == nil && !i.Force:
		return ErrFileExists.Wrapf("%s", path)

	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err := os.MkdirAll(i.Dir, 0o750); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err := writeFile(ctx, path, []byte(starter)); err != nil {
		return err
	}

	log.InfoContext(ctx, "wrote document", slog.String("path", path))

	return nil
}
