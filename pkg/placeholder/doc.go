// Package placeholder parses the document template grammar into a small
// syntax tree. The grammar recognises `{{key}}` scalars, `{{#each key}}` and
// `{{#if key}}` blocks closed by `{{/each}}` and `{{/if}}`, and the
// `{{multiply a b}}` helper. Keys may contain letters, digits, `_`, `-` and
// `.`; whitespace inside the braces is ignored.
//
// Parsing is total. Anything outside the grammar, including unterminated or
// unmatched block tags, is preserved as literal text and reported through
// Tree.Issues so broken templates stay visibly broken.
package placeholder
