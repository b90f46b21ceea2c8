package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawTemplate is the on-disk shape of a catalog template. Both the current
// keys and the legacy editor keys (`categoryId`, `html`) are accepted.
type RawTemplate struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	CategoryID  string     `json:"categoryId" yaml:"categoryId"`
	Format      string     `json:"format" yaml:"format"`
	Markup      string     `json:"markup" yaml:"markup"`
	HTML        string     `json:"html" yaml:"html"`
	Fields      []RawField `json:"fields" yaml:"fields"`
}

// RawField is the on-disk shape of a field definition. A repeater lists its
// row fields under `fields`; `children` is accepted as an alias.
type RawField struct {
	ID             string      `json:"id" yaml:"id"`
	Label          string      `json:"label" yaml:"label"`
	Type           string      `json:"type" yaml:"type"`
	Kind           string      `json:"kind" yaml:"kind"`
	Required       bool        `json:"required" yaml:"required"`
	Placeholder    string      `json:"placeholder" yaml:"placeholder"`
	Help           string      `json:"help" yaml:"help"`
	Default        any         `json:"default" yaml:"default"`
	DefaultChecked *bool       `json:"defaultChecked" yaml:"defaultChecked"`
	Options        []RawOption `json:"options" yaml:"options"`
	Fields         []RawField  `json:"fields" yaml:"fields"`
	Children       []RawField  `json:"children" yaml:"children"`
}

// RawOption accepts either a bare string or a `{value, label}` object.
type RawOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *RawOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = RawOption{Value: s}
		return nil
	}
	var obj struct {
		Value any    `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("model builder: option must be a string or {value, label}: %w", err)
	}
	*o = RawOption{Value: scalarString(obj.Value), Label: obj.Label}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *RawOption) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = RawOption{Value: node.Value}
		return nil
	}
	var obj struct {
		Value any    `yaml:"value"`
		Label string `yaml:"label"`
	}
	if err := node.Decode(&obj); err != nil {
		return fmt.Errorf("model builder: option must be a string or {value, label}: %w", err)
	}
	*o = RawOption{Value: scalarString(obj.Value), Label: obj.Label}
	return nil
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
