package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/randl/lang"
)

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		file    string
		exists  bool
		wantErr error
	}{
		{name: "create", file: "randl"},
		{name: "keeps extension", file: "mine.kdl"},
		{name: "overwrite with force", file: "randl", force: true, exists: true},
		{name: "refuse without force", file: "randl", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "documents")
			path := filepath.Join(dir, "randl.kdl")

			if filepath.Ext(tt.file) != "" {
				path = filepath.Join(dir, tt.file)
			}

			if tt.exists {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx, _ := withStdio("")

			err := (&Init{Force: tt.force, Dir: dir, Name: tt.file}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}

				if data, _ := os.ReadFile(path); string(data) != "existing" {
					t.Errorf("Run() modified %s", path)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			if string(data) != starter {
				t.Errorf("Run() wrote %q", data)
			}
		})
	}
}

func TestStarterDocument(t *testing.T) {
	doc, err := lang.ParseString(context.Background(), starter)
	if err != nil {
		t.Fatalf("starter document does not parse: %v", err)
	}

	if got := len(doc.Match("fighter/mario/c01/param.prc")); got != 1 {
		t.Errorf("Match() found %d entries, want 1", got)
	}
}
