// Package catalog stores document templates and the categories they are filed
// under. Stores load from any fs.FS of JSON or YAML files, and a bundled
// catalog with the standard agreement, contract, proposal, invoice, plan and
// certificate templates is always available through Builtin.
package catalog
