package yamlutil

import (
	"errors"
	"strings"
	"testing"
)

type doc struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		var d doc
		if err := UnmarshalStrict([]byte("name: acme\ncount: 2\n"), &d); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v", err)
		}
		if d.Name != "acme" || d.Count != 2 {
			t.Errorf("doc = %+v, want {acme 2}", d)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		var d doc
		if err := UnmarshalStrict([]byte("name: acme\nbogus: 1\n"), &d); err == nil {
			t.Error("UnmarshalStrict() = nil, want unknown-field error")
		}
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		var d doc
		if err := UnmarshalStrict(nil, &d); !errors.Is(err, ErrNilData) {
			t.Errorf("error = %v, want ErrNilData", err)
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		if err := UnmarshalStrict([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
			t.Errorf("error = %v, want ErrNilDestination", err)
		}
	})

	t.Run("oversized input", func(t *testing.T) {
		t.Parallel()

		var d doc
		big := []byte("name: " + strings.Repeat("a", MaxInputSize))
		if err := UnmarshalStrict(big, &d); !errors.Is(err, ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := Marshal(doc{Name: "acme", Count: 1})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(out), "name: acme") {
		t.Errorf("output = %q, want name field", out)
	}
}
