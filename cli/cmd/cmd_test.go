package cmd

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/randl/lang"
	"github.com/ardnew/randl/param"
	"github.com/ardnew/randl/pkg"
)

const costumes = `set "slots" {
    value 0
    value 1
}
file "fighter/c0{slots}/param.prc" {
    speed {
        return 2.0
    }
}
file "fighter/c00/param.prc" {
    name {
        return "first"
    }
}
`

// writeTemp writes content to a file named name in a fresh directory.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// withStdio returns a context reading stdin from in and writing to a buffer.
func withStdio(in string) (context.Context, *bytes.Buffer) {
	var out bytes.Buffer

	ctx := WithInput(context.Background(), strings.NewReader(in))

	return WithOutput(ctx, &out), &out
}

func fighter() *param.Node {
	return param.NewStruct(
		param.Named("speed", param.NewFloat(1)),
		param.Named("name", param.NewString("")),
	)
}

func encode(t *testing.T, n *param.Node) string {
	t.Helper()

	data, err := param.YAML{}.Encode(n)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	return string(data)
}

func TestReadFile(t *testing.T) {
	path := writeTemp(t, "in.txt", "from file")
	ctx, _ := withStdio("from stdin")

	tests := []struct {
		name string
		file string
		want string
	}{
		{name: "stdin", file: "-", want: "from stdin"},
		{name: "file", file: path, want: "from file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readFile(ctx, tt.file)
			if err != nil {
				t.Fatalf("readFile() error = %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("readFile() = %q, want %q", got, tt.want)
			}
		})
	}

	_, err := readFile(ctx, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, pkg.ErrReadInput) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("readFile(missing) error = %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	ctx, out := withStdio("")

	if err := writeFile(ctx, "-", []byte("hello")); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}

	if out.String() != "hello" {
		t.Errorf("stdout = %q, want %q", out.String(), "hello")
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	if err := writeFile(ctx, path, []byte("file")); err != nil {
		t.Fatalf("writeFile() error = %v", err)
	}

	if data, _ := os.ReadFile(path); string(data) != "file" {
		t.Errorf("file = %q, want %q", data, "file")
	}

	err := writeFile(ctx, filepath.Join(t.TempDir(), "no", "such", "dir"), nil)
	if !errors.Is(err, pkg.ErrWriteOutput) {
		t.Errorf("writeFile() error = %v, want %v", err, pkg.ErrWriteOutput)
	}
}

func TestReadDocument(t *testing.T) {
	ctx, _ := withStdio(costumes)

	doc, err := readDocument(ctx, "-")
	if err != nil {
		t.Fatalf("readDocument() error = %v", err)
	}

	if len(doc.Entries) != 2 {
		t.Errorf("len(Entries) = %d, want 2", len(doc.Entries))
	}

	bad := writeTemp(t, "bad.kdl", "bogus 1\n")

	_, err = readDocument(ctx, bad)
	if !errors.Is(err, ErrDocument) || !lang.IsParseError(err) {
		t.Errorf("readDocument() error = %v, want a parse error", err)
	}

	if !strings.Contains(err.Error(), bad) {
		t.Errorf("readDocument() error %q does not name %s", err, bad)
	}
}
