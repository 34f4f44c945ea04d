package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv returns an Environment with captured output buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(string) string { return "" },
	}
	return env, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// Test run - Command Dispatch
// ---------------------------------------------------------------------------

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints usage", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := run(nil, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "Usage: site2pdf") {
			t.Errorf("stderr = %q, want usage text", stderr.String())
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := run([]string{"publish"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "unknown command: publish") {
			t.Errorf("stderr = %q, want unknown command message", stderr.String())
		}
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := run([]string{"version"}, env); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "site2pdf "+Version) {
			t.Errorf("stdout = %q, want version line", stdout.String())
		}
	})

	t.Run("help goes to stdout", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := run([]string{"help"}, env); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		for _, cmd := range []string{"render", "batch", "status", "doctor"} {
			if !strings.Contains(stdout.String(), cmd) {
				t.Errorf("usage missing command %q", cmd)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Test subcommand argument handling
// ---------------------------------------------------------------------------

func TestRenderCmd_Usage(t *testing.T) {
	t.Parallel()

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := run([]string{"render"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "site2pdf render <subject>") {
			t.Errorf("stderr = %q, want render usage", stderr.String())
		}
	})

	t.Run("invalid flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := run([]string{"render", "acme", "--bogus"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("validation failure maps to usage exit", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		code := run([]string{"render", "ghost", "--root", t.TempDir()}, env)
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d (validation failure)", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "FAILED ghost") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		code := run([]string{"render", "acme", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, env)
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d (config not found)", code, ExitUsage)
		}
	})
}

func TestBatchCmd_Usage(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if code := run([]string{"batch"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "site2pdf batch <subject>...") {
		t.Errorf("stderr = %q, want batch usage", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// Test status - Artifact Reporting
// ---------------------------------------------------------------------------

func TestStatusCmd(t *testing.T) {
	t.Parallel()

	t.Run("no artifacts is informational, not an error", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		code := run([]string{"status", "acme", "--root", t.TempDir()}, env)
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "acme: no artifacts") {
			t.Errorf("stdout = %q, want no-artifacts line", stdout.String())
		}
	})

	t.Run("reports the latest artifact and version history", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		dir := filepath.Join(root, "generated-files", "pdfs")
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{
			"acme-portfolio-2026-08-22-101500.pdf",
			"acme-portfolio-2026-08-23-093000.pdf",
		} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF"), 0o644); err != nil {
				t.Fatal(err)
			}
		}

		env, stdout, _ := testEnv()
		if code := run([]string{"status", "acme", "--root", root}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
		}

		out := stdout.String()
		if !strings.Contains(out, "acme-portfolio-2026-08-23-093000.pdf") {
			t.Errorf("stdout = %q, want newest artifact first", out)
		}
		if !strings.Contains(out, "2 versions") {
			t.Errorf("stdout = %q, want version count", out)
		}
	})

	t.Run("missing subject argument", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		if code := run([]string{"status"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// Test flag to option mapping
// ---------------------------------------------------------------------------

func TestCliFlags_RenderOptions(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	var f cliFlags
	fs := newFlagSet("render", env, &f)
	if err := fs.Parse([]string{"--format", "letter", "--orientation", "landscape", "--margin", "1.5", "--debug"}); err != nil {
		t.Fatal(err)
	}

	opts := f.renderOptions()
	if opts.PageFormat != "letter" {
		t.Errorf("PageFormat = %q, want letter", opts.PageFormat)
	}
	if opts.Orientation != "landscape" {
		t.Errorf("Orientation = %q, want landscape", opts.Orientation)
	}
	if opts.Margins.Top != 1.5 || opts.Margins.Left != 1.5 {
		t.Errorf("Margins = %+v, want uniform 1.5", opts.Margins)
	}
	if !opts.Debug {
		t.Error("Debug = false, want true")
	}
}
