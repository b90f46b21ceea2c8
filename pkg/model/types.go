package model

// FieldKind enumerates the input kinds a template schema may declare.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindNumber   FieldKind = "number"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindRepeater FieldKind = "repeater"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindNumber, KindDate, KindSelect, KindCheckbox, KindRepeater:
		return true
	default:
		return false
	}
}

// Leaf reports whether k carries a scalar value.
func (k FieldKind) Leaf() bool {
	return k.Valid() && k != KindRepeater
}

// Field describes one expected input of a template. Children is only populated
// for repeaters and always holds leaf kinds. Labels, placeholders and help text
// are for the form layer; the renderer never reads them.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Default     string    `json:"default,omitempty" yaml:"default,omitempty"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Children    []Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Option is one choice of a select field. Value is what the record stores.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DisplayLabel returns the label, falling back to the value.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// OptionValues returns the stored values of a select field's options.
func (f Field) OptionValues() []string {
	out := make([]string, 0, len(f.Options))
	for _, opt := range f.Options {
		out = append(out, opt.Value)
	}
	return out
}

// IsRepeater reports whether the field holds a sequence of rows.
func (f Field) IsRepeater() bool {
	return f.Kind == KindRepeater
}

// DisplayLabel returns the label, falling back to the id.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// Format identifies the markup language a template body is written in.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// Template is a document body plus the schema its placeholders expect.
type Template struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
	Format      Format  `json:"format,omitempty" yaml:"format,omitempty"`
	Markup      string  `json:"markup" yaml:"markup"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// Field returns the top-level field with the supplied id.
func (t Template) Field(id string) (Field, bool) {
	for _, field := range t.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// Category groups templates for listing.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
