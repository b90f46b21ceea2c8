// Package fill collects a data record for a template schema by prompting
// through a PromptDriver. The default driver uses survey on the terminal.
package fill
