package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/randl/pkg"
)

const dirPerm = 0o750

// configPath returns the configuration file with extension ext that holds
// default flag values.
func configPath(ext string) string {
	return filepath.Join(pkg.ConfigDir(), pkg.Name+ext)
}

// mkdirAllRequired creates the directories randl reads from and writes to.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
