// Package export turns substituted document bodies into downloadable
// artifacts. Exporters are looked up by name in a Registry; the bundled html
// exporter wraps the body in a standalone page rendered by a pongo2 shell and
// the markup exporter returns the body as is.
package export
