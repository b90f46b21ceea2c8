package generator_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/export"
	"github.com/finaccosolutions/Document-Draft/pkg/generator"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
	"github.com/finaccosolutions/Document-Draft/pkg/testsupport"
)

func fixedID() (string, error) { return "doc-fixed", nil }

func invoiceRecord() model.Record {
	return model.Record{
		"company_name":    model.String("Acme"),
		"company_address": model.String("1 Main St"),
		"client_name":     model.String("Globex"),
		"client_address":  model.String("2 Side St"),
		"invoice_number":  model.String("INV-7"),
		"invoice_date":    model.String("2024-01-01"),
		"due_date":        model.String("2024-01-31"),
		"line_items": model.List(
			model.Record{"description": model.String("Design"), "quantity": model.Number(2), "unit_price": model.Number(10)},
			model.Record{"description": model.String("Hosting"), "unit_price": model.Number(5)},
		),
		"tax_rate":             model.Number(10),
		"payment_instructions": model.String("Wire transfer"),
	}
}

func TestGenerate_BuiltinInvoiceHTML(t *testing.T) {
	t.Parallel()

	gen := generator.New(generator.WithIDFunc(fixedID))
	doc, err := gen.Generate(testsupport.Context(), generator.Request{
		TemplateID: "invoice-template",
		Data:       invoiceRecord(),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.ID != "doc-fixed" || doc.TemplateID != "invoice-template" {
		t.Fatalf("unexpected identity %q/%q", doc.ID, doc.TemplateID)
	}
	if doc.Filename != "professional-invoice-doc-fixed.html" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	if doc.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", doc.ContentType)
	}
	if !doc.Complete() {
		t.Fatalf("expected complete record, missing %v", doc.Missing)
	}
	body := string(doc.Body)
	// The hosting row takes the quantity default of 1.
	for _, want := range []string{"<!DOCTYPE html>", "<h2>Acme</h2>", "<td>$25.00</td>", "<td>$2.50</td>", "<td>$27.50</td>", "Net 30"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in document:\n%s", want, body)
		}
	}
}

func TestGenerate_MissingFieldsAttached(t *testing.T) {
	t.Parallel()

	gen := generator.New(generator.WithIDFunc(fixedID))
	doc, err := gen.Generate(context.Background(), generator.Request{
		TemplateID: "invoice-template",
		Data:       model.Record{"company_name": model.String("Acme")},
		Format:     "markup",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Complete() {
		t.Fatalf("expected missing fields")
	}
	paths := make([]string, 0, len(doc.Missing))
	for _, issue := range doc.Missing {
		paths = append(paths, issue.Path)
	}
	want := []string{"company_address", "client_name", "client_address", "invoice_number", "invoice_date", "due_date", "line_items", "payment_instructions"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(doc.Body), "<h2>Acme</h2>") {
		t.Fatalf("incomplete records still render:\n%s", doc.Body)
	}
}

func TestGenerate_RequireComplete(t *testing.T) {
	t.Parallel()

	gen := generator.New()
	_, err := gen.Generate(context.Background(), generator.Request{
		TemplateID:      "invoice-template",
		Data:            model.Record{},
		RequireComplete: true,
	})
	if !errors.Is(err, generator.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	var incomplete *generator.IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteError, got %T", err)
	}
	if incomplete.TemplateID != "invoice-template" || len(incomplete.Missing) == 0 {
		t.Fatalf("unexpected error payload %+v", incomplete)
	}
	if !strings.Contains(err.Error(), "company_name") {
		t.Fatalf("error should name missing paths: %v", err)
	}
}

func TestGenerate_InlineMarkdownTemplate(t *testing.T) {
	t.Parallel()

	tpl := &model.Template{
		ID:     "minutes",
		Format: model.FormatMarkdown,
		Markup: "# Minutes for {{team}}\n\n{{#each items}}- **{{this}}**\n{{/each}}",
		Fields: []model.Field{{ID: "team", Kind: model.KindText, Required: true}},
	}
	gen := generator.New(generator.WithIDFunc(fixedID))
	data := model.FromMap(map[string]any{"team": "Core", "items": []any{"budget", "hiring"}})

	doc, err := gen.Generate(context.Background(), generator.Request{Template: tpl, Data: data, Title: "Weekly"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := string(doc.Body)
	if !strings.Contains(body, "Minutes for Core</h1>") || !strings.Contains(body, "<strong>hiring</strong>") {
		t.Fatalf("markdown body was not converted:\n%s", body)
	}
	if doc.Filename != "weekly-doc-fixed.html" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}

	raw, err := gen.Generate(context.Background(), generator.Request{Template: tpl, Data: data, Format: "MARKUP"})
	if err != nil {
		t.Fatalf("generate markup: %v", err)
	}
	if raw.ContentType != "text/markdown; charset=utf-8" || raw.Filename != "minutes-doc-fixed.md" {
		t.Fatalf("unexpected markup artifact %q %q", raw.ContentType, raw.Filename)
	}
	if !strings.HasPrefix(string(raw.Body), "# Minutes for Core") {
		t.Fatalf("markup exporter must keep markdown:\n%s", raw.Body)
	}
}

func TestGenerate_CustomDependencies(t *testing.T) {
	t.Parallel()

	store, err := catalog.New([]model.Template{{
		ID:     "note",
		Name:   "Note",
		Markup: "<p>{{fee}}</p>",
		Fields: []model.Field{{ID: "fee", Kind: model.KindNumber}},
	}}, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	registry := export.NewRegistry()
	registry.MustRegister(export.NewMarkup())

	gen := generator.New(
		generator.WithCatalog(store),
		generator.WithRegistry(registry),
		generator.WithRenderer(render.New(render.WithExtraNumericFields("fee"))),
		generator.WithDefaultFormat("markup"),
		generator.WithIDFunc(fixedID),
	)
	doc, err := gen.Generate(context.Background(), generator.Request{
		TemplateID: "note",
		Data:       model.Record{"fee": model.String("12.5")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := string(doc.Body); got != "<p>12.50</p>" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	gen := generator.New(generator.WithIDFunc(fixedID))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(cancelled, generator.Request{TemplateID: "invoice-template"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := gen.Generate(context.Background(), generator.Request{TemplateID: "missing"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}

	if _, err := gen.Generate(context.Background(), generator.Request{}); err == nil {
		t.Fatalf("expected error without template")
	}

	if _, err := gen.Generate(context.Background(), generator.Request{Template: &model.Template{ID: "blank"}}); err == nil {
		t.Fatalf("expected error for inline template without markup")
	}

	_, err := gen.Generate(context.Background(), generator.Request{TemplateID: "invoice-template", Format: "pdf"})
	if err == nil || !strings.Contains(err.Error(), `format "pdf"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}

	failing := generator.New(generator.WithIDFunc(func() (string, error) { return "", errors.New("entropy") }))
	if _, err := failing.Generate(context.Background(), generator.Request{TemplateID: "invoice-template"}); err == nil || !strings.Contains(err.Error(), "entropy") {
		t.Fatalf("expected id error, got %v", err)
	}
}

func TestGenerate_FixtureCatalogGolden(t *testing.T) {
	t.Parallel()

	store := testsupport.MustLoadCatalog(t, filepath.Join("testdata", "catalog"))
	data := testsupport.MustLoadRecord(t, filepath.Join("testdata", "minutes.yaml"))

	gen := generator.New(generator.WithCatalog(store), generator.WithIDFunc(fixedID))
	doc, err := gen.Generate(testsupport.Context(), generator.Request{
		TemplateID: "meeting-minutes",
		Data:       data,
		Format:     "markup",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Filename != "meeting-minutes-doc-fixed.md" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	testsupport.AssertGoldenString(t, filepath.Join("testdata", "minutes.golden.md"), string(doc.Body))
	testsupport.AssertGoldenJSON(t, filepath.Join("testdata", "minutes_missing.golden.json"), doc.Missing)
}
