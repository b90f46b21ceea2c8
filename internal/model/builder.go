package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// Builder converts raw catalog documents into validated templates.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	for alias, kind := range options.KindAliases {
		opts.KindAliases[strings.ToLower(alias)] = kind
	}
	return &Builder{opts: opts}
}

// Build normalises raw into a model.Template and validates its schema.
// Missing labels and names are derived from ids; `html` and `categoryId`
// are read when `markup` and `category` are absent.
func (b *Builder) Build(raw RawTemplate) (model.Template, error) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return model.Template{}, errTemplateIDMissing
	}

	format, err := parseFormat(raw.Format)
	if err != nil {
		return model.Template{}, fmt.Errorf("model builder: template %q: %w", id, err)
	}

	fields, err := b.BuildFields(raw.Fields)
	if err != nil {
		return model.Template{}, fmt.Errorf("model builder: template %q: %w", id, err)
	}

	tpl := model.Template{
		ID:          id,
		Name:        firstNonEmpty(raw.Name, b.opts.Labeler(id)),
		Description: strings.TrimSpace(raw.Description),
		Category:    firstNonEmpty(raw.Category, raw.CategoryID),
		Format:      format,
		Markup:      raw.Markup,
		Fields:      fields,
	}
	if strings.TrimSpace(tpl.Markup) == "" {
		tpl.Markup = raw.HTML
	}
	if strings.TrimSpace(tpl.Markup) == "" {
		return model.Template{}, fmt.Errorf("model builder: template %q: %w", id, errTemplateMarkupMissing)
	}
	return tpl, nil
}

// BuildFields converts and validates a list of raw field definitions.
func (b *Builder) BuildFields(raw []RawField) ([]model.Field, error) {
	fields := make([]model.Field, 0, len(raw))
	for _, item := range raw {
		field, err := b.buildField(item)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (b *Builder) buildField(raw RawField) (model.Field, error) {
	id := strings.TrimSpace(raw.ID)
	field := model.Field{
		ID:          id,
		Label:       firstNonEmpty(raw.Label, b.opts.Labeler(id)),
		Kind:        b.kind(firstNonEmpty(raw.Type, raw.Kind)),
		Required:    raw.Required,
		Placeholder: raw.Placeholder,
		Help:        raw.Help,
		Default:     scalarString(raw.Default),
	}
	if raw.DefaultChecked != nil && field.Default == "" {
		field.Default = scalarString(*raw.DefaultChecked)
	}

	for _, opt := range raw.Options {
		value := strings.TrimSpace(opt.Value)
		field.Options = append(field.Options, model.Option{
			Value: value,
			Label: firstNonEmpty(opt.Label, value),
		})
	}

	if len(raw.Fields) > 0 && len(raw.Children) > 0 {
		return model.Field{}, fmt.Errorf("%w: field %q declares both fields and children", ErrInvalidSchema, id)
	}
	children := raw.Fields
	if len(children) == 0 {
		children = raw.Children
	}
	for _, child := range children {
		converted, err := b.buildField(child)
		if err != nil {
			return model.Field{}, err
		}
		field.Children = append(field.Children, converted)
	}
	return field, nil
}

func (b *Builder) kind(raw string) model.FieldKind {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return model.KindText
	}
	if alias, ok := b.opts.KindAliases[name]; ok {
		return alias
	}
	return model.FieldKind(name)
}

func parseFormat(raw string) (model.Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "html":
		return model.FormatHTML, nil
	case "markdown", "md":
		return model.FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q", raw)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var (
	errTemplateIDMissing     = errors.New("model builder: template id is required")
	errTemplateMarkupMissing = errors.New("template markup is required")
)
