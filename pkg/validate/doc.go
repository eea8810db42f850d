// Package validate is the diagnostic rule engine.
//
// For each element opening tag in a document the engine resolves the
// element's schema definition (by formatted tag name), parses its attribute
// occurrences, evaluates the applicable rules under the cascading severity
// configuration (library override, then root, then built-in default; "off"
// disables evaluation entirely), asks the suppression resolver whether each
// candidate diagnostic is silenced by an author directive, and returns the
// survivors. No state is carried across elements except duplicate-name
// tracking scoped to a single element's occurrence list, and no error from
// a single element ever aborts the rest of the document.
package validate
