package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	f := NewFormatter(FormatJSON)

	data := map[string]any{"file": "index.html", "errors": 2}
	var buf bytes.Buffer
	if err := f.FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["file"] != "index.html" {
		t.Fatalf("file = %v", decoded["file"])
	}
}

func TestTextFormatter(t *testing.T) {
	f := NewFormatter(FormatText)

	out, err := f.Format("2 errors")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(out), "2 errors") {
		t.Fatalf("output = %q", out)
	}
}

func TestNewFormatterDefaultsToText(t *testing.T) {
	if _, ok := NewFormatter("bogus").(*TextFormatter); !ok {
		t.Fatal("unknown format should fall back to text")
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	inner := NewCommandError("validate", nil)
	if inner.Unwrap() != nil {
		t.Fatal("expected nil inner error")
	}
	if !strings.Contains(inner.Error(), "validate") {
		t.Fatalf("Error() = %q", inner.Error())
	}
}
