package validate

import "strings"

// globalAttributes are host-markup attributes valid on every element, so
// their absence from a schema entry is never an unknownAttribute finding.
var globalAttributes = map[string]struct{}{
	"accesskey":       {},
	"autocapitalize":  {},
	"autofocus":       {},
	"class":           {},
	"contenteditable": {},
	"dir":             {},
	"draggable":       {},
	"enterkeyhint":    {},
	"exportparts":     {},
	"hidden":          {},
	"id":              {},
	"inert":           {},
	"inputmode":       {},
	"is":              {},
	"itemid":          {},
	"itemprop":        {},
	"itemref":         {},
	"itemscope":       {},
	"itemtype":        {},
	"lang":            {},
	"nonce":           {},
	"part":            {},
	"popover":         {},
	"role":            {},
	"slot":            {},
	"spellcheck":      {},
	"style":           {},
	"tabindex":        {},
	"title":           {},
	"translate":       {},
	"xmlns":           {},
}

// isUniversalAttribute reports whether the name is always-valid host markup:
// a global attribute, a data-* or aria-* attribute, or an inline event
// handler.
func isUniversalAttribute(name string) bool {
	name = strings.ToLower(name)
	if _, ok := globalAttributes[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "data-") ||
		strings.HasPrefix(name, "aria-") ||
		strings.HasPrefix(name, "on")
}
