// Package generator runs the document pipeline: it resolves a template from a
// catalog, applies field defaults, reports missing required fields, renders
// the markup and hands the result to an exporter.
package generator
