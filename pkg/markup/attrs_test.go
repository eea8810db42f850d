package markup

import "testing"

func scanOne(t *testing.T, text string) (*Document, TagNode) {
	t.Helper()
	doc := NewDocument("test.html", text)
	nodes := ScanTags(doc)
	if len(nodes) != 1 {
		t.Fatalf("got %d tags, want 1", len(nodes))
	}
	return doc, nodes[0]
}

func TestParseAttributes_ValueForms(t *testing.T) {
	doc, node := scanOne(t, `<my-badge a="double quoted" b='single' c=unquoted d>`)

	attrs := ParseAttributes(doc, node)
	if len(attrs) != 4 {
		t.Fatalf("got %d attributes, want 4: %+v", len(attrs), attrs)
	}

	tests := []struct {
		name  string
		value string
		bare  bool
	}{
		{"a", "double quoted", false},
		{"b", "single", false},
		{"c", "unquoted", false},
		{"d", "", true},
	}
	for i, tt := range tests {
		attr := attrs[i]
		if attr.Name != tt.name {
			t.Errorf("attr %d name = %q, want %q", i, attr.Name, tt.name)
		}
		if tt.bare {
			if attr.Value != nil {
				t.Errorf("attr %q: want bare, got value %q", tt.name, *attr.Value)
			}
		} else if attr.Value == nil || *attr.Value != tt.value {
			t.Errorf("attr %q value = %v, want %q", tt.name, attr.Value, tt.value)
		}
	}
}

func TestParseAttributes_BindingSigils(t *testing.T) {
	doc, node := scanOne(t, `<my-badge .prop="x" ?open="y" @click="f" :bound="z" plain="w">`)

	attrs := ParseAttributes(doc, node)
	if len(attrs) != 5 {
		t.Fatalf("got %d attributes, want 5", len(attrs))
	}
	for i, wantBinding := range []bool{true, true, true, true, false} {
		if attrs[i].Binding != wantBinding {
			t.Errorf("attr %q binding = %v, want %v", attrs[i].Name, attrs[i].Binding, wantBinding)
		}
	}
}

func TestParseAttributes_MultiLineRanges(t *testing.T) {
	doc, node := scanOne(t, "<my-badge\n    size=\"small\"\n    disabled>")

	attrs := ParseAttributes(doc, node)
	if len(attrs) != 2 {
		t.Fatalf("got %d attributes, want 2", len(attrs))
	}

	size := attrs[0]
	if size.NameRange.Start != (Position{Line: 1, Character: 4}) {
		t.Errorf("size name start = %v", size.NameRange.Start)
	}
	if size.NameRange.End != (Position{Line: 1, Character: 8}) {
		t.Errorf("size name end = %v", size.NameRange.End)
	}
	if size.ValueRange.Start != (Position{Line: 1, Character: 10}) {
		t.Errorf("size value start = %v", size.ValueRange.Start)
	}

	disabled := attrs[1]
	if disabled.NameRange.Start.Line != 2 {
		t.Errorf("disabled on line %d, want 2", disabled.NameRange.Start.Line)
	}
}

func TestParseAttributes_MalformedRecovery(t *testing.T) {
	// Stray '=' tokens are unparsable fragments; parsing continues with the
	// attributes that follow instead of aborting the tag.
	doc, node := scanOne(t, `<my-badge == = size="small" = disabled>`)

	attrs := ParseAttributes(doc, node)
	if len(attrs) != 2 {
		t.Fatalf("got %d attributes, want 2: %+v", len(attrs), attrs)
	}
	if attrs[0].Name != "size" || attrs[0].Value == nil || *attrs[0].Value != "small" {
		t.Errorf("first attr = %+v, want size=small", attrs[0])
	}
	if attrs[1].Name != "disabled" || attrs[1].Value != nil {
		t.Errorf("second attr = %+v, want bare disabled", attrs[1])
	}
}

func TestParseAttributes_SelfClosingSlashIgnored(t *testing.T) {
	doc, node := scanOne(t, `<my-badge size="small" />`)

	attrs := ParseAttributes(doc, node)
	if len(attrs) != 1 {
		t.Fatalf("got %d attributes, want 1: %+v", len(attrs), attrs)
	}
	if attrs[0].Name != "size" {
		t.Errorf("attr name = %q, want size", attrs[0].Name)
	}
}

func TestParseAttributes_NoAttributes(t *testing.T) {
	doc, node := scanOne(t, `<my-badge>`)
	if attrs := ParseAttributes(doc, node); len(attrs) != 0 {
		t.Errorf("got %d attributes, want 0", len(attrs))
	}
}
