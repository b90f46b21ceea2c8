package render

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultNumericFields lists the field ids that always receive fixed-decimal
// formatting regardless of their declared kind. Schema authors rely on this
// list, so changes to it are visible in every rendered document.
var DefaultNumericFields = []string{
	"total_cost",
	"subtotal",
	"tax_amount",
	"total",
	"salary",
	"budget",
	"unit_price",
	"amount",
	"quantity",
	"vacation_days",
	"tax_rate",
	"term_months",
}

// DefaultDecimals is the number of fraction digits used for numeric fields.
const DefaultDecimals = 2

// Escaping selects how scalar values are transformed before substitution.
type Escaping int

const (
	// EscapeNone substitutes values verbatim.
	EscapeNone Escaping = iota
	// EscapeHTML entity-escapes values so they render as text.
	EscapeHTML
	// EscapeStrip removes any markup from values using a strict sanitizer.
	EscapeStrip
)

func (e Escaping) String() string {
	switch e {
	case EscapeHTML:
		return "html"
	case EscapeStrip:
		return "strip"
	default:
		return "none"
	}
}

// ParseEscaping maps a configuration string onto an Escaping mode.
func ParseEscaping(raw string) (Escaping, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none", "raw":
		return EscapeNone, nil
	case "html", "escape":
		return EscapeHTML, nil
	case "strip", "sanitize":
		return EscapeStrip, nil
	default:
		return EscapeNone, fmt.Errorf("render: unknown escaping mode %q", raw)
	}
}

// InvoiceTotals names the keys used to derive invoice totals. Rows under
// LineItems contribute Quantity x UnitPrice to Subtotal; TaxAmount is
// Subtotal x TaxRate / 100 and Total is their sum.
type InvoiceTotals struct {
	LineItems string
	Quantity  string
	UnitPrice string
	TaxRate   string
	Subtotal  string
	TaxAmount string
	Total     string
}

// DefaultInvoiceTotals returns the standard invoice key mapping.
func DefaultInvoiceTotals() InvoiceTotals {
	return InvoiceTotals{
		LineItems: "line_items",
		Quantity:  "quantity",
		UnitPrice: "unit_price",
		TaxRate:   "tax_rate",
		Subtotal:  "subtotal",
		TaxAmount: "tax_amount",
		Total:     "total",
	}
}

// Config is the complete rendering configuration table.
type Config struct {
	NumericFields []string
	Decimals      int
	// Invoice enables derived totals when non-nil.
	Invoice      *InvoiceTotals
	Escaping     Escaping
	OutputPolicy *bluemonday.Policy
}

// DefaultConfig returns the configuration used by the package-level Render.
func DefaultConfig() Config {
	invoice := DefaultInvoiceTotals()
	return Config{
		NumericFields: append([]string(nil), DefaultNumericFields...),
		Decimals:      DefaultDecimals,
		Invoice:       &invoice,
		Escaping:      EscapeNone,
	}
}

// Option configures a Renderer.
type Option func(*Config)

// WithConfig replaces the whole configuration table.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
		c.NumericFields = append([]string(nil), cfg.NumericFields...)
	}
}

// WithNumericFields replaces the reserved numeric field set.
func WithNumericFields(fields ...string) Option {
	return func(c *Config) {
		c.NumericFields = normaliseKeys(fields)
	}
}

// WithExtraNumericFields adds ids to the reserved numeric field set.
func WithExtraNumericFields(fields ...string) Option {
	return func(c *Config) {
		c.NumericFields = append(c.NumericFields, normaliseKeys(fields)...)
	}
}

// WithDecimals overrides the fraction digits used for numeric output.
// Negative values are ignored.
func WithDecimals(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.Decimals = n
		}
	}
}

// WithInvoiceTotals overrides the keys used for derived invoice totals.
func WithInvoiceTotals(totals InvoiceTotals) Option {
	return func(c *Config) {
		t := totals
		c.Invoice = &t
	}
}

// WithoutInvoiceTotals disables derived invoice totals.
func WithoutInvoiceTotals() Option {
	return func(c *Config) {
		c.Invoice = nil
	}
}

// WithEscaping selects how scalar values are escaped.
func WithEscaping(mode Escaping) Option {
	return func(c *Config) {
		c.Escaping = mode
	}
}

// WithOutputPolicy sanitizes the complete rendered document with policy.
func WithOutputPolicy(policy *bluemonday.Policy) Option {
	return func(c *Config) {
		c.OutputPolicy = policy
	}
}

// WithUGCOutputPolicy sanitizes the rendered document with bluemonday's
// user-generated-content policy, which keeps common formatting markup.
func WithUGCOutputPolicy() Option {
	return func(c *Config) {
		c.OutputPolicy = bluemonday.UGCPolicy()
	}
}

func normaliseKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
