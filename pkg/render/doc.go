// Package render substitutes data records into document markup. It is the
// single authoritative implementation of the placeholder grammar parsed by
// package placeholder.
//
// A render never fails. Missing keys substitute the empty string, `{{#each}}`
// over a non-list yields nothing, and values routed through numeric formatting
// are coerced with "parse as float, default to 0". Field ids in the reserved
// numeric table are always printed with two decimals, and when the data
// carries `line_items` the invoice totals (`subtotal`, `tax_amount`, `total`)
// are derived from the rows and override any supplied values.
//
// Renderers are immutable once constructed and safe for concurrent use.
package render
