package export

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// MarkdownToHTML converts a substituted markdown body to HTML. Raw HTML in
// the source passes through.
func MarkdownToHTML(src string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(src), p, r))
}

// HTMLBody returns page.Body as HTML, converting markdown pages.
func HTMLBody(page Page) string {
	if page.Format == model.FormatMarkdown {
		return MarkdownToHTML(page.Body)
	}
	return page.Body
}
