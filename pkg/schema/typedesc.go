package schema

import "strings"

// ResolveType classifies a manifest type expression into a TypeDescriptor.
//
// The grammar mirrors what custom-elements manifests carry in practice:
// plain "boolean"/"number"/"string", unions of quoted literals such as
// "'small' | 'large'", and arbitrary host-language expressions. The
// "undefined" and "null" members that analyzers append to optional
// attributes are ignored before classification. Intersections and unions
// with any open member resolve to KindUnchecked.
func ResolveType(text string) TypeDescriptor {
	text = strings.TrimSpace(text)
	if text == "" {
		return TypeDescriptor{Kind: KindUnchecked}
	}
	if strings.Contains(text, "&") {
		return TypeDescriptor{Kind: KindUnchecked}
	}

	var parts []string
	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)
		if part == "" || part == "undefined" || part == "null" {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return TypeDescriptor{Kind: KindUnchecked}
	}

	if len(parts) == 1 {
		switch parts[0] {
		case "boolean":
			return TypeDescriptor{Kind: KindBoolean}
		case "number":
			return TypeDescriptor{Kind: KindNumber}
		case "string":
			return TypeDescriptor{Kind: KindString}
		}
		if lit, ok := unquote(parts[0]); ok {
			return TypeDescriptor{Kind: KindEnum, Literals: []string{lit}}
		}
		return TypeDescriptor{Kind: KindUnchecked}
	}

	// A multi-member union is an enum only when every member is a quoted
	// literal; one open member makes the whole union unchecked.
	literals := make([]string, 0, len(parts))
	for _, part := range parts {
		lit, ok := unquote(part)
		if !ok {
			return TypeDescriptor{Kind: KindUnchecked}
		}
		literals = append(literals, lit)
	}
	return TypeDescriptor{Kind: KindEnum, Literals: literals}
}

// unquote strips one layer of matching single, double, or backtick quotes.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return "", false
	}
	switch first {
	case '\'', '"', '`':
		return s[1 : len(s)-1], true
	}
	return "", false
}
