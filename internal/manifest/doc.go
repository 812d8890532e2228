// Package manifest holds the declaration model of a build unit and the pure
// resolver that turns it into an effective dependency set.
//
// A BuildUnit is the configuration of a single module inside a multi-project
// build: the convention plugins it applies and the sibling modules and
// external packages it depends on. Resolve walks the declared dependencies in
// order, collapses duplicates onto their first occurrence and reports the
// first malformed declaration it meets. Resolution performs no I/O and holds
// no state, so independent units can be resolved concurrently.
package manifest
