package validate

import (
	"testing"

	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/markup"
)

func TestSuppressions_WholeFile(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	// unknownAttribute is silenced everywhere; deprecatedAttribute is not.
	text := "<!-- wclint-disable-file unknownAttribute -->\n" +
		"<my-badge frob=\"x\">\n" +
		"<my-badge tone=\"soft\" blip=\"y\">\n"

	ds := validateText(t, e, text)
	for _, d := range ds {
		if d.Rule == diag.RuleUnknownAttribute {
			t.Errorf("unknownAttribute survived a whole-file directive at %v", d.Range.Start)
		}
	}
	found := false
	for _, d := range ds {
		if d.Rule == diag.RuleDeprecatedAttribute {
			found = true
		}
	}
	if !found {
		t.Error("deprecatedAttribute wrongly suppressed by a listed directive")
	}
}

func TestSuppressions_AllRulesWhenNoList(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	text := "<!-- wclint-disable -->\n<my-badge frob=\"x\" size=\"medium\">"
	if ds := validateText(t, e, text); len(ds) != 0 {
		t.Errorf("directive without a rule list must silence everything, got %v", rulesOf(ds))
	}
}

func TestSuppressions_RestOfFileFromHere(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	// The first finding is above the directive and survives.
	text := "<my-badge frob=\"a\">\n" +
		"<!-- wclint-disable unknownAttribute -->\n" +
		"<my-badge frob=\"b\">"

	ds := validateText(t, e, text)
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %v, want exactly the pre-directive finding", rulesOf(ds))
	}
	if ds[0].Range.Start.Line != 0 {
		t.Errorf("surviving finding on line %d, want 0", ds[0].Range.Start.Line)
	}
}

func TestSuppressions_NextElement(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	// The directive governs only the next element; the one after it is
	// validated normally.
	text := "<!-- wclint-disable-next-element -->\n" +
		"<my-badge frob=\"a\">\n" +
		"<my-badge frob=\"b\">"

	ds := validateText(t, e, text)
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %v, want 1", rulesOf(ds))
	}
	if ds[0].Range.Start.Line != 2 {
		t.Errorf("surviving finding on line %d, want 2", ds[0].Range.Start.Line)
	}
}

func TestSuppressions_NextElementMultiLineSpan(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	// The governed range is the element's true multi-line opening tag
	// span, not just the line after the comment.
	text := "<!-- wclint-disable-next-element -->\n" +
		"<my-badge\n" +
		"    size=\"medium\"\n" +
		"    count=\"x\">\n" +
		"<my-badge size=\"medium\">"

	ds := validateText(t, e, text)
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %v, want only the trailing element's finding", rulesOf(ds))
	}
	if ds[0].Range.Start.Line != 4 {
		t.Errorf("surviving finding on line %d, want 4", ds[0].Range.Start.Line)
	}
}

func TestSuppressions_CommaSeparatedRuleList(t *testing.T) {
	doc := markup.NewDocument("test.html",
		"<!-- wclint-disable unknownAttribute,invalidNumber deprecatedAttribute -->\n<my-badge>")
	s := ScanSuppressions(doc, markup.ScanTags(doc))

	anywhere := markup.Range{Start: markup.Position{Line: 1}}
	for _, rule := range []diag.Rule{diag.RuleUnknownAttribute, diag.RuleInvalidNumber, diag.RuleDeprecatedAttribute} {
		if !s.IsSuppressed(rule, anywhere) {
			t.Errorf("%s not suppressed by comma/space list", rule)
		}
	}
	if s.IsSuppressed(diag.RuleUnknownElement, anywhere) {
		t.Error("unlisted rule suppressed")
	}
}

func TestSuppressions_DirectiveWithoutFollowingElement(t *testing.T) {
	doc := markup.NewDocument("test.html", "<my-badge>\n<!-- wclint-disable-next-element -->")
	s := ScanSuppressions(doc, markup.ScanTags(doc))

	if s.IsSuppressed(diag.RuleUnknownElement, markup.Range{Start: markup.Position{Line: 0}}) {
		t.Error("dangling next-element directive must govern nothing")
	}
}

func TestSuppressions_OrdinaryCommentsIgnored(t *testing.T) {
	e := newTestEngine(t, nil, badgeManifest)

	text := "<!-- just a note -->\n<my-badge frob=\"x\">"
	ds := validateText(t, e, text)
	if len(ds) != 1 || ds[0].Rule != diag.RuleUnknownAttribute {
		t.Errorf("diagnostics = %v, want one unknownAttribute", rulesOf(ds))
	}
}
