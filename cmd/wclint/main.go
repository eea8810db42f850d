// wclint validates custom-element markup against custom elements
// manifests.
//
// It resolves a project configuration, builds a schema index from the
// declared manifest sources, and reports diagnostics for unknown
// elements, unknown attributes, invalid attribute values, deprecations,
// and duplicate attributes.
//
// Usage:
//
//	# Validate files selected by the configuration's include globs
//	wclint validate index.html src/**/*.html
//
//	# Validate with a custom configuration file
//	wclint validate --config ./wclint.yaml index.html
//
//	# JSON output for CI
//	wclint validate --format json index.html
//
//	# List the indexed tags
//	wclint tags
//
//	# Show one element definition
//	wclint tags my-badge
//
//	# Show version information
//	wclint version
package main

func main() {
	Execute()
}
