package fileutil

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content and cleanup removes it", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path = %q, want .html suffix", path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q, want original", data)
		}

		cleanup()
		if FileExists(path) {
			t.Error("cleanup did not remove the temp file")
		}
	})

	t.Run("rejects unsafe extensions", func(t *testing.T) {
		t.Parallel()

		if _, _, err := WriteTempFile("x", ""); !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("empty extension error = %v, want ErrExtensionEmpty", err)
		}
		if _, _, err := WriteTempFile("x", "a/b"); !errors.Is(err, ErrExtensionPathTraversal) {
			t.Errorf("separator extension error = %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "plain", extension: "html", wantErr: nil},
		{name: "empty", extension: "", wantErr: ErrExtensionEmpty},
		{name: "forward slash", extension: "a/b", wantErr: ErrExtensionPathTraversal},
		{name: "backslash", extension: `a\b`, wantErr: ErrExtensionPathTraversal},
		{name: "null byte", extension: "a\x00b", wantErr: ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateExtension(tt.extension)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateExtension(%q) = %v, want nil", tt.extension, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/f.txt"
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists(regular file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(directory) = true")
	}
	if FileExists(dir + "/missing") {
		t.Error("FileExists(missing) = true")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	if !IsFilePath("configs/render.yaml") {
		t.Error("IsFilePath with separator = false")
	}
	if !IsFilePath(`configs\render.yaml`) {
		t.Error("IsFilePath with backslash = false")
	}
	if IsFilePath("render") {
		t.Error("IsFilePath bare name = true")
	}
}
