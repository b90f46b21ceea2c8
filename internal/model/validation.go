package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/placeholder"
)

// ErrInvalidSchema is wrapped by every structural schema error.
var ErrInvalidSchema = errors.New("model builder: invalid schema")

// ValidateFields checks the structural rules of a template schema: ids are
// valid placeholder keys and unique among siblings, kinds are known,
// repeaters hold at least one leaf child, and select fields list options.
func ValidateFields(fields []model.Field) error {
	return validateLevel(fields, "", false)
}

func validateLevel(fields []model.Field, parent string, inRepeater bool) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		path := field.ID
		if parent != "" {
			path = parent + "." + field.ID
		}
		if field.ID == "" {
			return fmt.Errorf("%w: field id is required (under %q)", ErrInvalidSchema, parent)
		}
		if !placeholder.ValidKey(field.ID) {
			return fmt.Errorf("%w: field %q: id is not a valid placeholder key", ErrInvalidSchema, path)
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("%w: field %q: duplicate id", ErrInvalidSchema, path)
		}
		seen[field.ID] = struct{}{}

		if err := validateField(field, path, inRepeater); err != nil {
			return err
		}
	}
	return nil
}

func validateField(field model.Field, path string, inRepeater bool) error {
	if !field.Kind.Valid() {
		return fmt.Errorf("%w: field %q: unknown kind %q", ErrInvalidSchema, path, field.Kind)
	}

	if field.IsRepeater() {
		if inRepeater {
			return fmt.Errorf("%w: field %q: repeaters cannot be nested", ErrInvalidSchema, path)
		}
		if len(field.Children) == 0 {
			return fmt.Errorf("%w: field %q: repeater requires at least one child field", ErrInvalidSchema, path)
		}
		return validateLevel(field.Children, path, true)
	}
	if len(field.Children) > 0 {
		return fmt.Errorf("%w: field %q: only repeaters may declare child fields", ErrInvalidSchema, path)
	}

	switch field.Kind {
	case model.KindSelect:
		return validateOptions(field, path)
	case model.KindNumber:
		if d := strings.TrimSpace(field.Default); d != "" {
			if _, err := strconv.ParseFloat(d, 64); err != nil {
				return fmt.Errorf("%w: field %q: default %q is not a number", ErrInvalidSchema, path, field.Default)
			}
		}
	case model.KindCheckbox:
		switch strings.ToLower(strings.TrimSpace(field.Default)) {
		case "", "true", "false", "yes", "no", "on", "off", "1", "0":
		default:
			return fmt.Errorf("%w: field %q: default %q is not a boolean", ErrInvalidSchema, path, field.Default)
		}
	case model.KindText, model.KindTextarea, model.KindDate, model.KindRepeater:
	}
	return nil
}

func validateOptions(field model.Field, path string) error {
	if len(field.Options) == 0 {
		return fmt.Errorf("%w: field %q: select requires at least one option", ErrInvalidSchema, path)
	}
	values := make(map[string]struct{}, len(field.Options))
	for _, opt := range field.Options {
		if opt.Value == "" {
			return fmt.Errorf("%w: field %q: option value is required", ErrInvalidSchema, path)
		}
		if _, dup := values[opt.Value]; dup {
			return fmt.Errorf("%w: field %q: duplicate option %q", ErrInvalidSchema, path, opt.Value)
		}
		values[opt.Value] = struct{}{}
	}
	if field.Default != "" {
		if _, ok := values[field.Default]; !ok {
			return fmt.Errorf("%w: field %q: default %q is not one of the options", ErrInvalidSchema, path, field.Default)
		}
	}
	return nil
}
