// Package markup provides the document model consumed by the validation
// engine: source positions and ranges, line/character to offset conversion,
// opening-tag discovery for custom elements, and an attribute-level parser
// that recovers exact source ranges from raw tag text.
//
// The package deliberately stops short of being an HTML parser. It only
// locates the opening-tag spans of hyphenated (custom-element) tags and
// re-derives attribute detail inside those spans; document structure beyond
// that is the concern of whatever host parser feeds the engine.
//
// # Usage
//
//	doc := markup.NewDocument("src/index.html", text)
//	for _, node := range markup.ScanTags(doc) {
//	    attrs := markup.ParseAttributes(doc, node)
//	    // evaluate attrs against a schema
//	}
package markup
