package catalog

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
	"github.com/finaccosolutions/Document-Draft/pkg/validation"
)

func templateIDs(templates []model.Template) []string {
	out := make([]string, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, tpl.ID)
	}
	return out
}

func TestBuiltinCatalog(t *testing.T) {
	t.Parallel()

	store, err := Builtin()
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}

	wantTemplates := []string{
		"nda-agreement",
		"employment-contract",
		"business-proposal",
		"invoice-template",
		"marketing-plan",
		"certificate-achievement",
	}
	if diff := cmp.Diff(wantTemplates, templateIDs(store.Templates())); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}

	var categoryIDs []string
	for _, cat := range store.Categories() {
		categoryIDs = append(categoryIDs, cat.ID)
	}
	wantCategories := []string{"legal", "business", "hr", "financial", "marketing", "certificates"}
	if diff := cmp.Diff(wantCategories, categoryIDs); diff != "" {
		t.Fatalf("categories mismatch (-want +got):\n%s", diff)
	}

	for _, tpl := range store.Templates() {
		if err := validation.Schema(tpl.Fields); err != nil {
			t.Fatalf("template %s has an invalid schema: %v", tpl.ID, err)
		}
	}
}

func TestBuiltinInvoiceRenders(t *testing.T) {
	t.Parallel()

	tpl, err := MustBuiltin().Template("invoice-template")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	data := model.Record{
		"company_name": model.String("Acme"),
		"line_items": model.List(
			model.Record{"description": model.String("Design"), "quantity": model.Number(2), "unit_price": model.Number(10)},
			model.Record{"description": model.String("Hosting"), "quantity": model.Number(1), "unit_price": model.Number(5)},
		),
		"tax_rate": model.Number(10),
	}
	out := render.Render(tpl.Markup, data)
	for _, want := range []string{"<h2>Acme</h2>", "<td>Design</td>", "<td>2.00</td>", "<td>$20.00</td>", "<td>$25.00</td>", "Tax (10.00%)", "<td>$2.50</td>", "<td>$27.50</td>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered invoice:\n%s", want, out)
		}
	}
	if strings.Contains(out, "{{") {
		t.Fatalf("rendered invoice still contains placeholders:\n%s", out)
	}
}

func TestTemplateNotFound(t *testing.T) {
	t.Parallel()

	_, err := MustBuiltin().Template("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err.Error() != `catalog: template "missing" not found` {
		t.Fatalf("unexpected message %q", err)
	}
	if _, err := MustBuiltin().Category("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for category, got %v", err)
	}
}

func TestByCategoryAndCounts(t *testing.T) {
	t.Parallel()

	store := MustBuiltin()
	if diff := cmp.Diff([]string{"invoice-template"}, templateIDs(store.ByCategory("financial"))); diff != "" {
		t.Fatalf("financial mismatch (-want +got):\n%s", diff)
	}
	if got := store.Counts()["legal"]; got != 1 {
		t.Fatalf("expected one legal template, got %d", got)
	}
	if len(store.ByCategory("unknown")) != 0 {
		t.Fatalf("unknown category must be empty")
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	store := MustBuiltin()
	results := store.Search("invoice")
	if len(results) == 0 || results[0].ID != "invoice-template" {
		t.Fatalf("expected invoice first, got %v", templateIDs(results))
	}
	if got := len(store.Search("  ")); got != store.Len() {
		t.Fatalf("empty query must list everything, got %d", got)
	}
	if got := store.Search("zzzzqqqq"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", templateIDs(got))
	}
}

func TestLoadFS_BundlesAndSingleFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"categories.json": {Data: []byte(`{"categories": [{"id": "ops", "name": "Operations"}]}`)},
		"minutes.yaml": {Data: []byte(`
id: meeting-minutes
category: ops
format: markdown
markup: "# Minutes for {{meeting_date}}"
fields:
  - id: meeting_date
    type: date
    required: true
`)},
		"bundle.json": {Data: []byte(`{"templates": [
			{"id": "memo", "categoryId": "ops", "html": "<p>{{body}}</p>", "fields": [{"id": "body", "type": "textarea"}]}
		]}`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := LoadFS(fsys, WithStrictCategories())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"memo", "meeting-minutes"}, templateIDs(store.Templates())); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	minutes, _ := store.Template("meeting-minutes")
	if minutes.Format != model.FormatMarkdown || minutes.Fields[0].Label != "Meeting Date" {
		t.Fatalf("unexpected minutes template %#v", minutes)
	}
	memo, _ := store.Template("memo")
	if memo.Markup != "<p>{{body}}</p>" || memo.Category != "ops" || memo.Name != "Memo" {
		t.Fatalf("unexpected memo template %#v", memo)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   fstest.MapFS
		options []Option
		wantErr string
	}{
		{
			name:    "empty file",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("  \n")}},
			wantErr: "is empty",
		},
		{
			name:    "invalid json",
			files:   fstest.MapFS{"a.json": {Data: []byte("{")}},
			wantErr: "parse a.json",
		},
		{
			name: "duplicate template",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("id: x\nmarkup: a\n")},
				"b.yaml": {Data: []byte("id: x\nmarkup: b\n")},
			},
			wantErr: `duplicate template "x"`,
		},
		{
			name:    "invalid schema",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("id: x\nmarkup: a\nfields:\n  - id: r\n    type: repeater\n")}},
			wantErr: "repeater requires at least one child",
		},
		{
			name:    "unknown category",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("id: x\ncategory: nowhere\nmarkup: a\n")}},
			options: []Option{WithStrictCategories()},
			wantErr: `unknown category "nowhere"`,
		},
		{
			name:    "lint",
			files:   fstest.MapFS{"a.yaml": {Data: []byte("id: x\nmarkup: \"{{#each rows}}x\"\n")}},
			options: []Option{WithMarkupLint()},
			wantErr: "never closed",
		},
	}

	for _, tc := range cases {
		_, err := LoadFS(tc.files, tc.options...)
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	t.Parallel()

	store, err := LoadFS(nil)
	if err != nil || store.Len() != 0 {
		t.Fatalf("expected empty store, got %v %v", store, err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	user, err := New(
		[]model.Template{
			{ID: "nda-agreement", Name: "Custom NDA", Category: "legal", Markup: "x"},
			{ID: "letter", Name: "Letter", Category: "personal", Markup: "y"},
		},
		[]model.Category{{ID: "personal", Name: "Personal"}},
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	merged := Merge(MustBuiltin(), user)
	if merged.Len() != 7 {
		t.Fatalf("expected 7 templates, got %d", merged.Len())
	}
	nda, _ := merged.Template("nda-agreement")
	if nda.Name != "Custom NDA" {
		t.Fatalf("later stores must override, got %q", nda.Name)
	}
	ids := templateIDs(merged.Templates())
	if ids[0] != "nda-agreement" || ids[len(ids)-1] != "letter" {
		t.Fatalf("unexpected merge order %v", ids)
	}
	if _, err := merged.Category("personal"); err != nil {
		t.Fatalf("expected merged category: %v", err)
	}

	if _, err := New([]model.Template{{ID: "a"}, {ID: "a"}}, nil); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
