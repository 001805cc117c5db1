package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/randl/lang"
)

func TestCheck_Run(t *testing.T) {
	good := writeTemp(t, "good.kdl", costumes)
	bad := writeTemp(t, "bad.kdl", `file "f" {
    speed {
        chance percent=50 {
            return 1
        }
    }
}
`)

	tests := []struct {
		name    string
		docs    []string
		want    []string
		wantErr error
	}{
		{
			name: "file",
			docs: []string{good},
			want: []string{good + ": 1 sets, 2 entries, 3 targets"},
		},
		{
			name: "stdin",
			docs: []string{"-"},
			want: []string{"<stdin>: 1 sets, 2 entries, 3 targets"},
		},
		{
			name:    "stops at invalid",
			docs:    []string{good, bad, good},
			want:    []string{good + ": 1 sets"},
			wantErr: lang.ErrInvalidChance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := withStdio(costumes)

			err := (&Check{Documents: tt.docs}).Run(ctx)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}

			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}

			if got := strings.Count(out.String(), "\n"); tt.wantErr != nil && got != 1 {
				t.Errorf("reported %d documents before failing, want 1", got)
			}
		})
	}
}
