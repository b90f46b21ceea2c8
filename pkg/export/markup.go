package export

import (
	"context"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// Markup emits the substituted body unchanged, in the template's own format.
type Markup struct{}

// NewMarkup constructs the markup exporter.
func NewMarkup() *Markup { return &Markup{} }

func (*Markup) Name() string { return "markup" }

// ContentType reports HTML; markdown pages override it through
// ContentTypeFor.
func (*Markup) ContentType() string { return "text/html; charset=utf-8" }
func (*Markup) Extension() string   { return ".html" }

// ContentTypeFor reports the media type of a page body in format.
func (*Markup) ContentTypeFor(format model.Format) string {
	if format == model.FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/html; charset=utf-8"
}

// ExtensionFor reports the file extension of a page body in format.
func (*Markup) ExtensionFor(format model.Format) string {
	if format == model.FormatMarkdown {
		return ".md"
	}
	return ".html"
}

func (*Markup) Export(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(page.Body), nil
}

// FormatAware is implemented by exporters whose media type follows the
// template format.
type FormatAware interface {
	ContentTypeFor(format model.Format) string
	ExtensionFor(format model.Format) string
}

// ContentType returns the media type exporter produces for format.
func ContentType(exporter Exporter, format model.Format) string {
	if aware, ok := exporter.(FormatAware); ok {
		return aware.ContentTypeFor(format)
	}
	return exporter.ContentType()
}

// Extension returns the file extension exporter produces for format.
func Extension(exporter Exporter, format model.Format) string {
	if aware, ok := exporter.(FormatAware); ok {
		return aware.ExtensionFor(format)
	}
	return exporter.Extension()
}
