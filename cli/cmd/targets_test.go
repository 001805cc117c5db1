package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/randl/hash40"
	"github.com/ardnew/randl/host"
)

func TestTargets_Run(t *testing.T) {
	doc := writeTemp(t, "doc.kdl", costumes)

	c00 := hash40.FromString("fighter/c00/param.prc").String()
	c01 := hash40.FromString("fighter/c01/param.prc").String()

	tests := []struct {
		name    string
		where   string
		want    []string
		notWant []string
	}{
		{
			name: "all",
			want: []string{
				c00 + " fighter/c00/param.prc " + doc + "#0",
				c00 + " fighter/c00/param.prc " + doc + "#1",
				c01 + " fighter/c01/param.prc " + doc + "#0",
			},
		},
		{
			name:    "where",
			where:   "entry == 1",
			want:    []string{c00 + " fighter/c00/param.prc " + doc + "#1"},
			notWant: []string{c01, doc + "#0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := withStdio("")

			err := (&Targets{Where: tt.where, Documents: []string{doc}}).Run(ctx)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(out.String(), want+"\n") {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			for _, bad := range tt.notWant {
				if strings.Contains(out.String(), bad) {
					t.Errorf("output contains %q:\n%s", bad, out)
				}
			}
		})
	}
}

func entry(target string) string {
	return "file \"" + target + "\" {\n    x {\n        original\n    }\n}\n"
}

func TestTargets_SearchPath(t *testing.T) {
	dir := t.TempDir()
	extra := t.TempDir()

	files := map[string]string{
		filepath.Join(dir, "a.kdl"):   entry("a.prc"),
		filepath.Join(extra, "b.kdl"): entry("b.prc"),
		filepath.Join(extra, "c.txt"): entry("c.prc"),
	}

	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Setenv("RANDL_PATH", extra)
	t.Setenv("RANDL_EXT", ".kdl")

	ctx, out := withStdio("")

	if err := (&Targets{Dir: dir}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"a.prc", "b.prc"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out.String(), "c.prc") {
		t.Errorf("output lists a file with the wrong extension:\n%s", out)
	}
}

func TestTargets_BadFilter(t *testing.T) {
	doc := writeTemp(t, "doc.kdl", costumes)
	ctx, _ := withStdio("")

	err := (&Targets{Where: "target ==", Documents: []string{doc}}).Run(ctx)
	if !errors.Is(err, host.ErrFilter) {
		t.Errorf("Run() error = %v, want %v", err, host.ErrFilter)
	}
}
