// Package schema builds and serves the element schema index.
//
// Schemas arrive as custom-elements manifests (JSON), one per declared
// library, fetched from a local path or over HTTP with a bounded timeout.
// At load time every element's raw tag name passes through the library's
// tag formatter exactly once, and every attribute's type text is resolved
// into a closed TypeDescriptor under the library's configured type source.
// The per-source results merge in declaration order into a single Index;
// on formatted-tag collision the later source wins.
//
// The Loader owns the mutable cache state. It publishes each rebuilt Index
// atomically under a monotonically increasing generation: readers always see
// either the previous complete index or the new complete one, never a
// half-built map. A fetch or parse failure is scoped to its source (logged,
// the source contributes nothing) and never aborts the overall load.
package schema
