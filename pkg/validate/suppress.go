package validate

import (
	"math"
	"strings"

	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/markup"
)

// Suppression directive keywords, written inside markup comments:
//
//	<!-- wclint-disable-file [rules...] -->         whole file
//	<!-- wclint-disable [rules...] -->              rest of file from here
//	<!-- wclint-disable-next-element [rules...] --> the next element's full
//	                                                opening tag span
//
// The optional rule list is comma and/or space separated; omitting it
// disables all rules within the directive's scope.
const (
	directiveFile        = "wclint-disable-file"
	directiveNextElement = "wclint-disable-next-element"
	directiveRest        = "wclint-disable"
)

// suppressEntry is one directive's governed line range and rule set.
type suppressEntry struct {
	startLine int
	endLine   int
	all       bool
	rules     map[diag.Rule]struct{}
}

// Suppressions answers whether a candidate diagnostic is silenced by a
// directive. Built fresh per document per validation pass.
type Suppressions struct {
	entries []suppressEntry
}

// ScanSuppressions scans the document's comments once and resolves each
// directive's governed range. nodes must be the document's tag nodes in
// document order; a next-element directive governs the full multi-line span
// of the first element that opens after the comment ends.
func ScanSuppressions(doc *markup.Document, nodes []markup.TagNode) *Suppressions {
	var s Suppressions
	for _, comment := range markup.ScanComments(doc) {
		fields := strings.Fields(comment.Text)
		if len(fields) == 0 {
			continue
		}
		directive := fields[0]
		all, rules := parseRuleList(fields[1:])

		switch directive {
		case directiveFile:
			s.entries = append(s.entries, suppressEntry{
				startLine: 0,
				endLine:   math.MaxInt,
				all:       all,
				rules:     rules,
			})
		case directiveNextElement:
			node, ok := nextElement(nodes, comment.End)
			if !ok {
				continue
			}
			span := node.Span(doc)
			s.entries = append(s.entries, suppressEntry{
				startLine: span.Start.Line,
				endLine:   span.End.Line,
				all:       all,
				rules:     rules,
			})
		case directiveRest:
			s.entries = append(s.entries, suppressEntry{
				startLine: doc.PositionAt(comment.Start).Line,
				endLine:   math.MaxInt,
				all:       all,
				rules:     rules,
			})
		}
	}
	return &s
}

// IsSuppressed reports whether a diagnostic of the given rule starting in
// the given range is silenced by any directive.
func (s *Suppressions) IsSuppressed(rule diag.Rule, r markup.Range) bool {
	line := r.Start.Line
	for _, e := range s.entries {
		if line < e.startLine || line > e.endLine {
			continue
		}
		if e.all {
			return true
		}
		if _, ok := e.rules[rule]; ok {
			return true
		}
	}
	return false
}

// parseRuleList splits the directive's trailing tokens into a rule set.
// No tokens means "all rules".
func parseRuleList(tokens []string) (all bool, rules map[diag.Rule]struct{}) {
	rules = make(map[diag.Rule]struct{})
	for _, token := range tokens {
		for _, name := range strings.Split(token, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				rules[diag.Rule(name)] = struct{}{}
			}
		}
	}
	return len(rules) == 0, rules
}

// nextElement returns the first node whose opening tag starts at or after
// the given offset.
func nextElement(nodes []markup.TagNode, offset int) (markup.TagNode, bool) {
	for _, node := range nodes {
		if node.Start >= offset {
			return node, true
		}
	}
	return markup.TagNode{}, false
}
