package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/export"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
	"github.com/finaccosolutions/Document-Draft/pkg/validation"
)

const defaultFormat = "html"

// Catalog resolves templates by id. *catalog.Store satisfies it.
type Catalog interface {
	Template(id string) (model.Template, error)
}

var _ Catalog = (*catalog.Store)(nil)

// Option customises the generator configuration.
type Option func(*Generator)

// WithCatalog injects the template source. Defaults to the built-in catalog.
func WithCatalog(c Catalog) Option {
	return func(g *Generator) {
		g.catalog = c
	}
}

// WithRenderer injects the placeholder renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(g *Generator) {
		g.renderer = r
	}
}

// WithRegistry injects the exporter registry.
func WithRegistry(registry *export.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithDefaultFormat overrides the exporter used when a request omits Format.
func WithDefaultFormat(name string) Option {
	return func(g *Generator) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			g.defaultFormat = trimmed
		}
	}
}

// WithIDFunc replaces the document id generator.
func WithIDFunc(fn func() (string, error)) Option {
	return func(g *Generator) {
		g.newID = fn
	}
}

// WithClock replaces the time source stamped on exported pages.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator coordinates catalog lookup, validation, rendering and export.
// Missing dependencies are initialised with the built-in implementations.
type Generator struct {
	catalog       Catalog
	renderer      *render.Renderer
	registry      *export.Registry
	defaultFormat string
	newID         func() (string, error)
	now           func() time.Time
	initialiseErr error
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{defaultFormat: defaultFormat}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

func (g *Generator) applyDefaults() {
	if g.renderer == nil {
		g.renderer = render.New()
	}
	if g.newID == nil {
		g.newID = export.NewID
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.catalog == nil {
		store, err := catalog.Builtin()
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: load builtin catalog: %w", err)
			return
		}
		g.catalog = store
	}
	if g.registry == nil {
		registry, err := export.NewDefaultRegistry()
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: default exporters: %w", err)
			return
		}
		g.registry = registry
	}
}

// Request describes one document to produce.
type Request struct {
	// TemplateID selects a catalog template. Ignored when Template is set.
	TemplateID string

	// Template supplies an inline template, bypassing the catalog.
	Template *model.Template

	// Data holds the values placeholders resolve against.
	Data model.Record

	// Format names the exporter. Empty selects the configured default.
	Format string

	// RequireComplete rejects records with missing required fields.
	RequireComplete bool

	// Title names the document. Defaults to the template name.
	Title string
}

// Document is the exported result.
type Document struct {
	ID          string
	TemplateID  string
	Filename    string
	ContentType string
	Body        []byte
	Missing     []validation.Issue
}

// Complete reports whether every required field was supplied.
func (d Document) Complete() bool {
	return len(d.Missing) == 0
}

// Generate executes the resolve, validate, render and export sequence.
func (g *Generator) Generate(ctx context.Context, req Request) (Document, error) {
	if ctx == nil {
		return Document{}, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if err := g.initialiseErr; err != nil {
		return Document{}, err
	}

	tpl, err := g.resolveTemplate(req)
	if err != nil {
		return Document{}, err
	}

	exporter, err := g.exporterFor(req.Format)
	if err != nil {
		return Document{}, err
	}

	data := model.ApplyDefaults(tpl.Fields, req.Data)
	result := validation.Required(tpl.Fields, data)
	if req.RequireComplete && !result.Valid {
		return Document{}, &IncompleteError{TemplateID: tpl.ID, Missing: result.Missing}
	}

	body := g.renderer.Render(tpl.Markup, data)

	id, err := g.newID()
	if err != nil {
		return Document{}, fmt.Errorf("generator: document id: %w", err)
	}

	title := firstNonEmpty(req.Title, tpl.Name, tpl.ID)
	format := tpl.Format
	if format == "" {
		format = model.FormatHTML
	}

	out, err := exporter.Export(ctx, export.Page{
		ID:         id,
		Title:      title,
		TemplateID: tpl.ID,
		Category:   tpl.Category,
		Format:     format,
		Body:       body,
		CreatedAt:  g.now(),
	})
	if err != nil {
		return Document{}, fmt.Errorf("generator: export %s: %w", exporter.Name(), err)
	}

	return Document{
		ID:          id,
		TemplateID:  tpl.ID,
		Filename:    export.Filename(title, id, export.Extension(exporter, format)),
		ContentType: export.ContentType(exporter, format),
		Body:        out,
		Missing:     result.Missing,
	}, nil
}

func (g *Generator) resolveTemplate(req Request) (model.Template, error) {
	if req.Template != nil {
		if strings.TrimSpace(req.Template.Markup) == "" {
			return model.Template{}, errors.New("generator: inline template markup is required")
		}
		return *req.Template, nil
	}
	id := strings.TrimSpace(req.TemplateID)
	if id == "" {
		return model.Template{}, errors.New("generator: template id or template is required")
	}
	if g.catalog == nil {
		return model.Template{}, errors.New("generator: catalog is nil")
	}
	tpl, err := g.catalog.Template(id)
	if err != nil {
		return model.Template{}, fmt.Errorf("generator: %w", err)
	}
	return tpl, nil
}

func (g *Generator) exporterFor(name string) (export.Exporter, error) {
	if g.registry == nil {
		return nil, errors.New("generator: exporter registry is nil")
	}
	target := name
	if strings.TrimSpace(target) == "" {
		target = g.defaultFormat
	}
	exporter, err := g.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("generator: format %q: %w", target, err)
	}
	return exporter, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
