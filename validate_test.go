package site2pdf

// Notes:
// - Every problem is reported together, never just the first one
// - Validation is read-only and never returns an error

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeSubject lays out {root}/generated-files/{id}/index.html with content.
func writeSubject(t *testing.T, root, id, content string) {
	t.Helper()

	dir := filepath.Join(root, "generated-files", id)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestValidationGate_Validate - Pre-Flight Checks
// ---------------------------------------------------------------------------

func TestValidationGate_Validate(t *testing.T) {
	t.Parallel()

	t.Run("well-formed subject passes", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubject(t, root, "acme", "<html><body>acme</body></html>")

		report := NewValidationGate(root).Validate("acme")
		if !report.Valid {
			t.Errorf("Valid = false, issues: %v", report.Issues)
		}
		if len(report.Issues) != 0 {
			t.Errorf("Issues = %v, want none", report.Issues)
		}
	})

	t.Run("missing directory reports directory and entry issues", func(t *testing.T) {
		t.Parallel()

		report := NewValidationGate(t.TempDir()).Validate("ghost")
		if report.Valid {
			t.Fatal("Valid = true for missing subject")
		}
		if len(report.Issues) < 2 {
			t.Errorf("Issues = %v, want both directory and entry problems", report.Issues)
		}
	})

	t.Run("empty entry file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeSubject(t, root, "acme", "")

		report := NewValidationGate(root).Validate("acme")
		if report.Valid {
			t.Fatal("Valid = true for empty entry file")
		}
		if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "empty") {
			t.Errorf("Issues = %v, want a single empty-file issue", report.Issues)
		}
	})

	t.Run("empty subject id collects every issue", func(t *testing.T) {
		t.Parallel()

		report := NewValidationGate(t.TempDir()).Validate("   ")
		if report.Valid {
			t.Fatal("Valid = true for blank subject id")
		}
		// Blank id, missing directory, missing entry: all reported at once.
		if len(report.Issues) != 3 {
			t.Errorf("Issues = %v, want 3 accumulated issues", report.Issues)
		}
	})
}
