package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ItemKey names the single key assigned to list rows that were scalars in the
// decoded input (e.g. a JSON array of strings).
const ItemKey = "this"

// Record maps field ids to values. Absent keys are legal and mean "no value".
type Record map[string]Value

// Get returns the value stored under key, or null when absent.
func (r Record) Get(key string) Value {
	if r == nil {
		return Null()
	}
	return r[key]
}

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	if r == nil {
		return false
	}
	v, ok := r[key]
	return ok && !v.IsNull()
}

// Clone returns a shallow copy of r. List rows are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for key, value := range r {
		out[key] = value
	}
	return out
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map converts the record into plain Go values for JSON/YAML encoding.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		out[key] = value.Interface()
	}
	return out
}

// MarshalJSON encodes the record as a plain JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// UnmarshalJSON decodes a JSON object into the record, applying the same
// conversions as FromAny.
func (r *Record) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

// DecodeJSON parses a JSON object into a Record. Numbers are decoded without
// losing precision before conversion to float64.
func DecodeJSON(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("model: decode json record: %w", err)
	}
	return FromMap(raw), nil
}

// DecodeYAML parses a YAML mapping into a Record.
func DecodeYAML(data []byte) (Record, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("model: decode yaml record: %w", err)
	}
	return FromMap(raw), nil
}

// Decode parses JSON and falls back to YAML, mirroring how catalog files are
// read.
func Decode(data []byte) (Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Record{}, nil
	}
	if trimmed[0] == '{' {
		if rec, err := DecodeJSON(trimmed); err == nil {
			return rec, nil
		}
	}
	rec, err := DecodeYAML(trimmed)
	if err != nil {
		return nil, fmt.Errorf("model: record is neither JSON nor YAML: %w", err)
	}
	return rec, nil
}

// FromMap converts decoded JSON/YAML into a Record. Nested objects are
// flattened into dotted keys so `{"benefits": {"dental": true}}` is reachable
// as `benefits.dental`. Arrays become List values.
func FromMap(in map[string]any) Record {
	out := make(Record, len(in))
	flattenInto(out, "", in)
	return out
}

func flattenInto(dest Record, prefix string, in map[string]any) {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw := in[key]
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if nested, ok := asStringMap(raw); ok {
			flattenInto(dest, name, nested)
			continue
		}
		dest[name] = FromAny(raw)
	}
}

// FromAny converts a single decoded value. Maps are not flattened here: a map
// encountered directly becomes a single-row list so the caller still sees its
// contents.
func FromAny(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return String(v.String())
		}
		return Number(n)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case Record:
		return List(v)
	case []Record:
		return List(v...)
	case []any:
		return listFromSlice(v)
	}

	if nested, ok := asStringMap(raw); ok {
		return List(FromMap(nested))
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
		return listFromSlice(items)
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint()))
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	}
	return String(fmt.Sprint(raw))
}

func listFromSlice(items []any) Value {
	rows := make([]Record, 0, len(items))
	for _, item := range items {
		if nested, ok := asStringMap(item); ok {
			rows = append(rows, FromMap(nested))
			continue
		}
		if rec, ok := item.(Record); ok {
			rows = append(rows, rec)
			continue
		}
		rows = append(rows, Record{ItemKey: FromAny(item)})
	}
	return Value{kind: ValueList, list: rows}
}

func asStringMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[fmt.Sprint(key)] = value
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = value
		}
		return out, true
	default:
		return nil, false
	}
}

// ApplyDefaults returns a copy of record where absent leaf fields with a
// declared Default are filled in. Number fields receive a numeric value when
// the default parses; checkbox defaults accept "true"/"false". Repeater rows
// receive their children's defaults.
func ApplyDefaults(fields []Field, record Record) Record {
	out := record.Clone()
	for _, field := range fields {
		if field.IsRepeater() {
			rows, ok := out.Get(field.ID).Rows()
			if !ok || len(rows) == 0 {
				continue
			}
			filled := make([]Record, 0, len(rows))
			for _, row := range rows {
				filled = append(filled, ApplyDefaults(field.Children, row))
			}
			out[field.ID] = List(filled...)
			continue
		}
		if out.Has(field.ID) || field.Default == "" {
			continue
		}
		out[field.ID] = defaultValue(field)
	}
	return out
}

func defaultValue(field Field) Value {
	switch field.Kind {
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(field.Default), 64)
		if err != nil {
			return String(field.Default)
		}
		return Number(Finite(n))
	case KindCheckbox:
		switch strings.ToLower(strings.TrimSpace(field.Default)) {
		case "true", "yes", "on", "1":
			return Bool(true)
		default:
			return Bool(false)
		}
	default:
		return String(field.Default)
	}
}

// Finite maps NaN and infinities to 0 so arithmetic on coerced values never
// leaks them into a document.
func Finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
