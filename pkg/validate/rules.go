package validate

import (
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/wclint/pkg/config"
	"mercator-hq/wclint/pkg/diag"
	"mercator-hq/wclint/pkg/markup"
	"mercator-hq/wclint/pkg/schema"
)

// checkElement evaluates every rule for one element occurrence. Severity is
// resolved before evaluation, so a rule at "off" constructs nothing.
func (e *Engine) checkElement(idx *schema.Index, doc *markup.Document, node markup.TagNode) diag.Diagnostics {
	def := idx.Get(node.Name)

	// Only hyphenated tag names are considered custom; an unknown plain
	// HTML tag is not this engine's business.
	if def == nil && !strings.Contains(node.Name, "-") {
		return nil
	}

	scope := &e.cfg.Root
	if def != nil {
		scope = e.cfg.Library(def.Library)
	}

	var out diag.Diagnostics
	report := func(rule diag.Rule, r markup.Range, format string, args ...any) {
		sev := scope.SeverityFor(rule)
		if sev == diag.SeverityOff {
			return
		}
		out = append(out, diag.Diagnostic{
			Rule:     rule,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
			Range:    r,
		})
	}

	if def == nil {
		report(diag.RuleUnknownElement, node.NameRange(doc),
			"unknown custom element <%s>", node.Name)
	} else if def.Deprecated {
		report(diag.RuleDeprecatedElement, node.NameRange(doc),
			"<%s> is deprecated", node.Name)
	}

	seen := map[string]int{}
	for _, attr := range markup.ParseAttributes(doc, node) {
		// Duplicate tracking keys on the name as written, sigil included,
		// and is scoped to this one element occurrence. Only the second
		// and later occurrences are reported.
		seen[attr.Name]++
		if seen[attr.Name] > 1 {
			report(diag.RuleDuplicateAttribute, attr.NameRange,
				"duplicate attribute %q", attr.Name)
		}

		// Bound attributes are the host framework's concern.
		if attr.Binding || def == nil {
			continue
		}

		adef, ok := def.Attribute(attr.Name)
		if !ok {
			if !isUniversalAttribute(attr.Name) {
				report(diag.RuleUnknownAttribute, attr.NameRange,
					"unknown attribute %q on <%s>", attr.Name, node.Name)
			}
			continue
		}

		if adef.Deprecated {
			report(diag.RuleDeprecatedAttribute, attr.NameRange,
				"attribute %q is deprecated", attr.Name)
		}

		out = append(out, e.checkValue(scope, node, attr, adef)...)
	}
	return out
}

// checkValue applies the type-directed value rules for one occurrence.
func (e *Engine) checkValue(scope *config.Effective, node markup.TagNode, attr markup.AttributeOccurrence, adef *schema.AttributeDefinition) diag.Diagnostics {
	var out diag.Diagnostics
	report := func(rule diag.Rule, format string, args ...any) {
		sev := scope.SeverityFor(rule)
		if sev == diag.SeverityOff {
			return
		}
		out = append(out, diag.Diagnostic{
			Rule:     rule,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
			Range:    attr.ValueRange,
		})
	}

	switch adef.Type.Kind {
	case schema.KindBoolean:
		// Absence and the empty string are valid boolean spellings.
		if attr.Value != nil && *attr.Value != "" && *attr.Value != "true" && *attr.Value != "false" {
			report(diag.RuleInvalidBoolean,
				"%q is not a valid boolean for %q (use true, false, or no value)", *attr.Value, attr.Name)
		}
	case schema.KindNumber:
		if attr.Value != nil {
			if _, err := strconv.ParseFloat(*attr.Value, 64); err != nil {
				report(diag.RuleInvalidNumber,
					"%q is not a valid number for %q", *attr.Value, attr.Name)
			}
		}
	case schema.KindEnum:
		if attr.Value != nil && !adef.Type.Contains(*attr.Value) {
			report(diag.RuleInvalidAttributeValue,
				"%q is not a valid value for %q (expected one of: %s)",
				*attr.Value, attr.Name, strings.Join(adef.Type.Literals, ", "))
		}
	}
	// KindString and KindUnchecked are never value-validated.
	return out
}
