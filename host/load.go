package host

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ardnew/randl/lang"
)

// Source is a document and the file it was loaded from.
type Source struct {
	Doc  *lang.Document
	Path string
}

// Load reads every document in the directories of c.Dirs(dirs...).
// Documents that cannot be read or parsed are logged and skipped, and
// directories that do not exist are ignored. Load fails only when ctx is
// done.
func Load(ctx context.Context, c Config, dirs []string, opts ...Option) ([]Source, error) {
	var all []Source

	for _, dir := range c.Dirs(dirs...) {
		src, err := LoadFS(ctx, os.DirFS(dir), dir, c.Ext, opts...)
		if err != nil {
			return all, err
		}

		all = append(all, src...)
	}

	return all, nil
}

// LoadFS reads the documents with extension ext at the top level of fsys.
// Source paths are reported relative to root.
func LoadFS(ctx context.Context, fsys fs.FS, root, ext string, opts ...Option) ([]Source, error) {
	o := makeOptions(opts...)

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			o.logger.WarnContext(ctx, "skipping directory",
				slog.String("dir", root), slog.Any("error", err))
		}

		return nil, nil
	}

	var out []Source

	for _, ent := range entries {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		if !ent.Type().IsRegular() || !strings.EqualFold(path.Ext(ent.Name()), ext) {
			continue
		}

		name := filepath.Join(root, ent.Name())

		doc, err := loadFile(ctx, fsys, ent.Name(), o.lang)
		if err != nil {
			o.logger.WarnContext(ctx, "skipping document",
				slog.String("file", name), slog.Any("error", err))

			continue
		}

		o.logger.DebugContext(ctx, "document loaded", slog.String("file", name))

		out = append(out, Source{Doc: doc, Path: name})
	}

	return out, nil
}

func loadFile(ctx context.Context, fsys fs.FS, name string, opts []lang.Option) (*lang.Document, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return lang.ParseReader(ctx, f, opts...)
}
