// Package validation decides whether a record satisfies the required fields
// of a template schema. It never affects rendering: a record that fails
// validation still renders, with blanks where values are missing.
package validation
