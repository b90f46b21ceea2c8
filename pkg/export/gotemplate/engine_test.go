package gotemplate_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/finaccosolutions/Document-Draft/pkg/export/gotemplate"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func assertRendered(t *testing.T, golden string, render func(io.Writer) (string, error)) {
	t.Helper()

	result, written := testsupport.CaptureTemplateOutput(t, render)
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", golden))
	if result != want {
		t.Fatalf("render mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	assertRendered(t, "hello.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
}

func TestEngine_RenderRecord(t *testing.T) {
	engine := newEngine(t)
	assertRendered(t, "hello.golden", func(w io.Writer) (string, error) {
		return engine.Render("hello.tpl", model.Record{"name": model.String("Ada")}, w)
	})
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	assertRendered(t, "use-global.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
}

func TestEngine_FilterOption(t *testing.T) {
	engine := newEngine(t, gotemplate.WithFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	}))
	assertRendered(t, "use-filter.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
}

func TestEngine_MoneyFilter(t *testing.T) {
	engine := newEngine(t)
	assertRendered(t, "money.golden", func(w io.Writer) (string, error) {
		return engine.RenderTemplate("money", map[string]any{"total": 27.5}, w)
	})

	got, err := engine.RenderString("{{ v|money }}", map[string]any{"v": "abc"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "0.00" {
		t.Fatalf("expected 0.00 for non-numeric input, got %q", got)
	}
}

func TestEngine_RenderStringAutoescapes(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("<p>{{ body }}</p><div>{{ body|safe }}</div>", map[string]any{"body": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<p>&lt;b&gt;x&lt;/b&gt;</p><div><b>x</b></div>"; got != want {
		t.Fatalf("autoescape mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for a missing template")
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
