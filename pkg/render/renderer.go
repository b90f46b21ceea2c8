package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/placeholder"
)

// Renderer substitutes records into markup according to its Config.
type Renderer struct {
	numeric  map[string]struct{}
	fields   []string
	decimals int
	invoice  *InvoiceTotals
	escaping Escaping
	policy   *bluemonday.Policy
}

// New constructs a Renderer from DefaultConfig plus any options.
func New(options ...Option) *Renderer {
	cfg := DefaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	r := &Renderer{
		numeric:  make(map[string]struct{}, len(cfg.NumericFields)),
		decimals: cfg.Decimals,
		escaping: cfg.Escaping,
		policy:   cfg.OutputPolicy,
	}
	for _, field := range cfg.NumericFields {
		if _, ok := r.numeric[field]; ok {
			continue
		}
		r.numeric[field] = struct{}{}
		r.fields = append(r.fields, field)
	}
	if cfg.Invoice != nil {
		invoice := *cfg.Invoice
		r.invoice = &invoice
	}
	return r
}

var defaultRenderer = New()

// Render substitutes data into markup using the default configuration.
func Render(markup string, data model.Record) string {
	return defaultRenderer.Render(markup, data)
}

// Config reports the configuration the renderer was built with.
func (r *Renderer) Config() Config {
	cfg := Config{
		NumericFields: append([]string(nil), r.fields...),
		Decimals:      r.decimals,
		Escaping:      r.escaping,
		OutputPolicy:  r.policy,
	}
	if r.invoice != nil {
		invoice := *r.invoice
		cfg.Invoice = &invoice
	}
	return cfg
}

// IsNumericField reports whether key receives fixed-decimal formatting.
func (r *Renderer) IsNumericField(key string) bool {
	_, ok := r.numeric[key]
	return ok
}

// Render parses markup and evaluates it against data. Markup without any
// recognised construct is returned unchanged.
func (r *Renderer) Render(markup string, data model.Record) string {
	if !strings.Contains(markup, openDelim) && r.policy == nil {
		return markup
	}
	return r.RenderTree(placeholder.Parse(markup), data)
}

// RenderTree evaluates an already parsed tree, letting callers parse a
// template once and render it against many records.
func (r *Renderer) RenderTree(tree placeholder.Tree, data model.Record) string {
	root := &scope{record: r.working(data)}
	var b strings.Builder
	r.evalNodes(&b, tree.Nodes, root)
	out := b.String()
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}
	return out
}

// Totals reports the derived invoice totals for data, or false when the data
// carries no line items (or totals are disabled).
func (r *Renderer) Totals(data model.Record) (Totals, bool) {
	if r.invoice == nil {
		return Totals{}, false
	}
	return r.invoice.compute(data)
}

// Parse exposes the syntax tree the renderer evaluates for markup.
func (r *Renderer) Parse(markup string) placeholder.Tree {
	return placeholder.Parse(markup)
}

// Placeholders lists the keys markup references, in first-seen order.
func (r *Renderer) Placeholders(markup string) []string {
	return r.Parse(markup).Keys()
}

// Placeholders lists the keys markup references using the default renderer.
func Placeholders(markup string) []string {
	return defaultRenderer.Placeholders(markup)
}

// Lint reports malformed constructs in markup.
func Lint(markup string) []placeholder.Issue {
	return placeholder.Parse(markup).Issues
}

const openDelim = "{{"

// working returns the record placeholders resolve against at the root: the
// caller's data with derived totals written over it.
func (r *Renderer) working(data model.Record) model.Record {
	if r.invoice == nil {
		return data
	}
	totals, ok := r.invoice.compute(data)
	if !ok {
		return data
	}
	out := data.Clone()
	out[r.invoice.Subtotal] = model.Number(totals.Subtotal)
	out[r.invoice.TaxAmount] = model.Number(totals.TaxAmount)
	out[r.invoice.Total] = model.Number(totals.Total)
	return out
}
