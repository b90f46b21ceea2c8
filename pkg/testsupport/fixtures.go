package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// updateGoldens reports whether golden files should be rewritten.
func updateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// MustLoadRecord reads a JSON or YAML data fixture into a Record.
func MustLoadRecord(t *testing.T, path string) model.Record {
	t.Helper()

	record, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return record
}

// LoadRecord reads a data fixture without requiring testing.T so setup
// helpers can share it.
func LoadRecord(path string) (model.Record, error) {
	if path == "" {
		return nil, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read record: %w", err)
	}
	record, err := model.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode record %s: %w", path, err)
	}
	return record, nil
}

// MustLoadCatalog loads every template file under dir.
func MustLoadCatalog(t *testing.T, dir string) *catalog.Store {
	t.Helper()

	store, err := catalog.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return store
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if !updateGoldens() {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if !updateGoldens() {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// AssertGoldenString compares got with the golden file at path, rewriting the
// file instead when UPDATE_GOLDENS is set.
func AssertGoldenString(t *testing.T, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	want := MustReadGoldenString(t, path)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// AssertGoldenJSON compares value, encoded as indented JSON, with the golden
// file at path. Surrounding whitespace is ignored.
func AssertGoldenJSON(t *testing.T, path string, value any) {
	t.Helper()
	if updateGoldens() {
		WriteGolden(t, path, value)
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	want := strings.TrimSpace(MustReadGoldenString(t, path))
	if diff := CompareGolden(want, strings.TrimSpace(string(payload))); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
