package docdraft

import (
	"context"

	"github.com/finaccosolutions/Document-Draft/pkg/generator"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
	"github.com/finaccosolutions/Document-Draft/pkg/validation"
)

// Record aliases model.Record so callers can build data without importing the
// model package.
type Record = model.Record

// Field aliases model.Field.
type Field = model.Field

// Template aliases model.Template.
type Template = model.Template

// Request aliases generator.Request.
type Request = generator.Request

// Document aliases generator.Document.
type Document = generator.Document

// Render substitutes data into markup with the default renderer: two decimal
// numeric fields, derived invoice totals and no value escaping.
func Render(markup string, data Record) string {
	return render.Render(markup, data)
}

// RenderWith renders markup with a renderer built from options.
func RenderWith(markup string, data Record, options ...render.Option) string {
	return render.New(options...).Render(markup, data)
}

// Validate reports the required fields of fields that data leaves empty.
func Validate(fields []Field, data Record) validation.Result {
	return validation.Required(fields, data)
}

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// Generate resolves templateID from the built-in catalog (or the catalog
// passed through options), renders data into it and exports it in format.
func Generate(ctx context.Context, templateID string, data Record, format string, options ...generator.Option) (Document, error) {
	return generator.New(options...).Generate(ctx, generator.Request{
		TemplateID: templateID,
		Data:       data,
		Format:     format,
	})
}
