package markup

import (
	"regexp"
	"strings"
)

// BindingSigils are the leading characters that mark a framework-bound
// attribute (lit ".prop", "?bool", "@event"; vue ":prop"; angular-style
// "[prop]", "(event)"; template references "#ref"). Bound attributes are
// reported for duplicate detection but exempt from schema checks.
const BindingSigils = ".?@:#[("

// AttributeOccurrence is one attribute as written on a single opening tag.
// Occurrences are produced fresh per parse and never cached across documents.
type AttributeOccurrence struct {
	// Name is the attribute name exactly as written, sigil included.
	Name string

	// Value is the raw textual value with quotes stripped, or nil for a
	// bare attribute written without '='.
	Value *string

	// Binding reports whether the name begins with a binding sigil.
	Binding bool

	// NameRange is the source range of the name token.
	NameRange Range

	// ValueRange is the source range of the value text (excluding quotes).
	// Zero when Value is nil.
	ValueRange Range
}

// attrPattern matches one attribute: a name token, optionally followed by
// '=' and a double-quoted, single-quoted, or unquoted value. Anything the
// pattern cannot account for is skipped, which is the recovery behavior for
// malformed fragments.
var attrPattern = regexp.MustCompile(
	`([^\s"'>/=]+)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+)))?`)

// ParseAttributes extracts the attribute occurrences of one opening tag,
// in source order, with exact ranges derived from the tag's offset in the
// document. It never fails: unparsable fragments are skipped and parsing
// continues with the rest of the tag text.
func ParseAttributes(d *Document, node TagNode) []AttributeOccurrence {
	// Scan only past the tag name so the name itself is never an attribute.
	from := node.NameStart + len(node.Name)
	to := node.End
	if to > len(d.Text) {
		to = len(d.Text)
	}
	if from >= to {
		return nil
	}
	raw := d.Text[from:to]

	var attrs []AttributeOccurrence
	for _, m := range attrPattern.FindAllStringSubmatchIndex(raw, -1) {
		name := raw[m[2]:m[3]]
		if name == "/" || name == "" {
			continue
		}
		occ := AttributeOccurrence{
			Name:      name,
			Binding:   strings.ContainsAny(name[:1], BindingSigils),
			NameRange: d.RangeOf(from+m[2], from+m[3]),
		}
		// One of the three value groups may have matched.
		for _, g := range []int{4, 6, 8} {
			if m[g] >= 0 {
				v := raw[m[g]:m[g+1]]
				occ.Value = &v
				occ.ValueRange = d.RangeOf(from+m[g], from+m[g+1])
				break
			}
		}
		attrs = append(attrs, occ)
	}
	return attrs
}
