package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoad - Config Resolution and Parsing
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("full config by path", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render.yaml", `
root: /srv/portfolios
concurrency: 4
log:
  level: debug
  format: json
waits:
  imageWait: 3s
  cdnSettle: 2500ms
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Root != "/srv/portfolios" {
			t.Errorf("Root = %q, want /srv/portfolios", cfg.Root)
		}
		if cfg.Concurrency != 4 {
			t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v, want debug/json", cfg.Log)
		}
		if cfg.Waits.ImageWait.Std() != 3*time.Second {
			t.Errorf("ImageWait = %v, want 3s", cfg.Waits.ImageWait.Std())
		}
		if cfg.Waits.CDNSettle.Std() != 2500*time.Millisecond {
			t.Errorf("CDNSettle = %v, want 2.5s", cfg.Waits.CDNSettle.Std())
		}
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render.yaml", "concurrency: 3\n")

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Root != "." {
			t.Errorf("Root = %q, want default %q", cfg.Root, ".")
		}
		if cfg.Log.Level != "info" {
			t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, "info")
		}
		if cfg.Waits.ImageWait != 0 {
			t.Errorf("ImageWait = %v, want zero (library default)", cfg.Waits.ImageWait)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file by path", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unresolvable name", func(t *testing.T) {
		t.Parallel()

		_, err := Load("definitely-not-a-real-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render.yaml", "roto: typo\n")
		if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "render.yaml", "root: [unclosed\n")
		if _, err := Load(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDuration_UnmarshalYAML
// ---------------------------------------------------------------------------

func TestDuration_UnmarshalYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "8s", want: 8 * time.Second},
		{name: "milliseconds", input: "500ms", want: 500 * time.Millisecond},
		{name: "quoted", input: `"2s"`, want: 2 * time.Second},
		{name: "empty means zero", input: "", want: 0},
		{name: "bare number", input: "10", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Duration
			err := d.UnmarshalYAML([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDuration) {
					t.Fatalf("error = %v, want ErrInvalidDuration", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalYAML(%q) error = %v", tt.input, err)
			}
			if d.Std() != tt.want {
				t.Errorf("Std() = %v, want %v", d.Std(), tt.want)
			}
		})
	}
}
