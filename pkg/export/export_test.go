package export

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

func TestHTMLExport_WrapsBody(t *testing.T) {
	t.Parallel()

	exporter, err := NewHTML()
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{
		ID:         "doc-1",
		Title:      "Acme & Co NDA",
		TemplateID: "nda-agreement",
		Category:   "legal",
		Body:       "<h1>NON-DISCLOSURE AGREEMENT</h1>",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Acme &amp; Co NDA</title>",
		`class="document document--legal"`,
		`data-template="nda-agreement"`,
		`data-document="doc-1"`,
		"<h1>NON-DISCLOSURE AGREEMENT</h1>",
		".signature-section",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
}

func TestHTMLExport_Options(t *testing.T) {
	t.Parallel()

	exporter, err := NewHTML(
		WithStylesheet(""),
		WithLang("fr"),
		WithBodyPolicy(bluemonday.UGCPolicy()),
	)
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{
		TemplateID: "memo",
		Body:       `<p onclick="steal()">Hello</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	page := string(out)
	if strings.Contains(page, "<style>") {
		t.Fatalf("stylesheet must be omitted:\n%s", page)
	}
	if !strings.Contains(page, `<html lang="fr">`) || !strings.Contains(page, "<title>memo</title>") {
		t.Fatalf("expected lang and fallback title:\n%s", page)
	}
	if strings.Contains(page, "onclick") || strings.Contains(page, "<script>") {
		t.Fatalf("body policy was not applied:\n%s", page)
	}
}

func TestHTMLExport_MarkdownBody(t *testing.T) {
	t.Parallel()

	exporter, err := NewHTML()
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{
		Format: model.FormatMarkdown,
		Body:   "# Minutes\n\n- **Ada** presented",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "Minutes</h1>") || !strings.Contains(page, "<strong>Ada</strong>") {
		t.Fatalf("markdown was not converted:\n%s", page)
	}
}

func TestHTMLExport_GoTemplateBundledShell(t *testing.T) {
	t.Parallel()

	exporter, err := NewHTML(WithGoTemplate())
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{
		ID:         "doc-2",
		Title:      "Offer",
		TemplateID: "offer-letter",
		Body:       "<p>Welcome aboard</p>",
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	page := string(out)
	for _, want := range []string{"<title>Offer</title>", `data-document="doc-2"`, "<p>Welcome aboard</p>"} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %q in page:\n%s", want, page)
		}
	}
}

func TestHTMLExport_ShellDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	shell := "<main data-brand=\"{{ brand }}\" lang=\"{{ lang }}\">{{ body|safe }}</main>"
	if err := os.WriteFile(filepath.Join(dir, "letter.tpl"), []byte(shell), 0o644); err != nil {
		t.Fatalf("write shell: %v", err)
	}
	exporter, err := NewHTML(
		WithShellDir(dir),
		WithShell("letter"),
		WithGoTemplate(gotemplatepkg.WithGlobalData(map[string]any{"brand": "acme"})),
	)
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{Body: "<p>Dear Ada</p>"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got, want := strings.TrimSpace(string(out)), `<main data-brand="acme" lang="en"><p>Dear Ada</p></main>`; got != want {
		t.Fatalf("shell output mismatch:\n got %s\nwant %s", got, want)
	}

	missing, err := NewHTML(WithShellDir(dir))
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	if _, err := missing.Export(context.Background(), Page{}); err == nil {
		t.Fatalf("expected error for a shell missing from the directory")
	}
}

type stubEngine struct {
	name string
	data any
	err  error
}

func (s *stubEngine) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	return "shell", nil
}

func TestHTMLExport_CustomEngine(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{}
	exporter, err := NewHTML(WithEngine(engine), WithShell("letter"))
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	out, err := exporter.Export(context.Background(), Page{Body: "b"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(out) != "shell" || engine.name != "letter" {
		t.Fatalf("expected custom engine to render letter, got %q via %q", out, engine.name)
	}
	if got := engine.data.(map[string]any)["body"]; got != "b" {
		t.Fatalf("body not passed to engine: %#v", got)
	}

	engine.err = errors.New("boom")
	if _, err := exporter.Export(context.Background(), Page{}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected engine error, got %v", err)
	}
}

func TestExport_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exporter, err := NewHTML()
	if err != nil {
		t.Fatalf("new html: %v", err)
	}
	if _, err := exporter.Export(ctx, Page{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := NewMarkup().Export(ctx, Page{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMarkupExport(t *testing.T) {
	t.Parallel()

	m := NewMarkup()
	out, err := m.Export(context.Background(), Page{Body: "# Title", Format: model.FormatMarkdown})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if string(out) != "# Title" {
		t.Fatalf("markup must be returned unchanged, got %q", out)
	}
	if got := ContentType(m, model.FormatMarkdown); got != "text/markdown; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := Extension(m, model.FormatMarkdown); got != ".md" {
		t.Fatalf("unexpected extension %q", got)
	}
	html, _ := NewHTML()
	if got := Extension(html, model.FormatMarkdown); got != ".html" {
		t.Fatalf("html exporter always writes .html, got %q", got)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	registry, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "markup"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has(" HTML ") {
		t.Fatalf("lookups must be case-insensitive")
	}
	if err := registry.Register(NewMarkup()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := registry.Get("pdf"); err == nil || !strings.Contains(err.Error(), `"pdf" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil exporter")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustRegister must panic on duplicates")
		}
	}()
	registry.MustRegister(NewMarkup())
}

func TestNewIDAndFilename(t *testing.T) {
	t.Parallel()

	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if !strings.HasPrefix(id, IDPrefix) || len(id) != len(IDPrefix)+IDLength {
		t.Fatalf("unexpected id %q", id)
	}
	other, _ := NewID()
	if other == id {
		t.Fatalf("ids must be unique, got %q twice", id)
	}

	custom, err := IDGenerator("inv-", "0123456789", 6)()
	if err != nil {
		t.Fatalf("custom id: %v", err)
	}
	if !strings.HasPrefix(custom, "inv-") || len(custom) != len("inv-")+6 || strings.Trim(custom[4:], "0123456789") != "" {
		t.Fatalf("unexpected custom id %q", custom)
	}
	fallback, err := IDGenerator("", "", 0)()
	if err != nil || len(fallback) != IDLength {
		t.Fatalf("expected default alphabet and length, got %q (%v)", fallback, err)
	}

	for _, tc := range []struct {
		title, id, ext, want string
	}{
		{title: "Professional Invoice", id: "doc-abc", ext: ".html", want: "professional-invoice-doc-abc.html"},
		{title: "  Q3: Plan / Draft!  ", id: "", ext: "md", want: "q3-plan-draft.md"},
		{title: "", id: "doc-1", ext: ".html", want: "document-doc-1.html"},
	} {
		if got := Filename(tc.title, tc.id, tc.ext); got != tc.want {
			t.Fatalf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
