package export

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"

	"github.com/finaccosolutions/Document-Draft/pkg/export/gotemplate"
)

//go:embed templates/*
var embeddedShells embed.FS

const (
	defaultShell = "document"
	defaultLang  = "en"

	shellExtension = ".tpl"
)

// TemplateEngine is the seam the html exporter renders document shells
// through.
type TemplateEngine interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

var (
	_ TemplateEngine = (*gotemplate.Engine)(nil)
	_ TemplateEngine = (gotemplate.Renderer)(nil)
)

// ShellsFS returns the bundled document shell templates and stylesheet.
func ShellsFS() fs.FS {
	sub, err := fs.Sub(embeddedShells, "templates")
	if err != nil {
		return embeddedShells
	}
	return sub
}

// HTMLOption configures the html exporter.
type HTMLOption func(*HTML)

// WithEngine replaces the pongo2 engine loaded with the bundled shell.
func WithEngine(engine TemplateEngine) HTMLOption {
	return func(h *HTML) {
		h.engine = engine
	}
}

// WithGoTemplate renders shells through a go-template engine instead of the
// built-in pongo2 set. Options are applied after the shell source, so they
// can add template functions or global data.
func WithGoTemplate(options ...gotemplatepkg.Option) HTMLOption {
	return func(h *HTML) {
		h.goTemplate = true
		h.goTemplateOpts = append(h.goTemplateOpts, options...)
	}
}

// WithShellDir loads shells from dir through go-template. dir must hold a
// "<shell>.tpl" file for the selected shell.
func WithShellDir(dir string) HTMLOption {
	return func(h *HTML) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			h.goTemplate = true
			h.shellDir = trimmed
		}
	}
}

// WithShell selects the shell template rendered around the body.
func WithShell(name string) HTMLOption {
	return func(h *HTML) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			h.shell = trimmed
		}
	}
}

// WithStylesheet replaces the bundled stylesheet. An empty string omits the
// style block.
func WithStylesheet(css string) HTMLOption {
	return func(h *HTML) {
		h.stylesheet = css
	}
}

// WithLang sets the document language attribute.
func WithLang(lang string) HTMLOption {
	return func(h *HTML) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			h.lang = trimmed
		}
	}
}

// WithBodyPolicy sanitizes the body with policy before it enters the shell.
func WithBodyPolicy(policy *bluemonday.Policy) HTMLOption {
	return func(h *HTML) {
		h.policy = policy
	}
}

// HTML wraps a document body in a standalone HTML page.
type HTML struct {
	engine     TemplateEngine
	shell      string
	stylesheet string
	lang       string
	policy     *bluemonday.Policy

	goTemplate     bool
	goTemplateOpts []gotemplatepkg.Option
	shellDir       string
}

// NewHTML constructs the html exporter.
func NewHTML(options ...HTMLOption) (*HTML, error) {
	css, err := fs.ReadFile(embeddedShells, "templates/document.css")
	if err != nil {
		return nil, fmt.Errorf("export: read bundled stylesheet: %w", err)
	}
	h := &HTML{
		shell:      defaultShell,
		stylesheet: string(css),
		lang:       defaultLang,
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	if h.engine == nil && h.goTemplate {
		engine, err := gotemplate.NewShared(h.sharedOptions()...)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		h.engine = engine
	}
	if h.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(ShellsFS()))
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		h.engine = engine
	}
	return h, nil
}

func (h *HTML) sharedOptions() []gotemplatepkg.Option {
	source := gotemplatepkg.WithFS(ShellsFS())
	if h.shellDir != "" {
		source = gotemplatepkg.WithBaseDir(h.shellDir)
	}
	options := []gotemplatepkg.Option{source, gotemplatepkg.WithExtension(shellExtension)}
	return append(options, h.goTemplateOpts...)
}

func (h *HTML) Name() string        { return "html" }
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }
func (h *HTML) Extension() string   { return ".html" }

// Export renders page inside the shell. Markdown bodies are converted first.
func (h *HTML) Export(ctx context.Context, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body := HTMLBody(page)
	if h.policy != nil {
		body = h.policy.Sanitize(body)
	}

	title := page.Title
	if title == "" {
		title = page.TemplateID
	}
	out, err := h.engine.RenderTemplate(h.shell, map[string]any{
		"id":          page.ID,
		"title":       title,
		"template_id": page.TemplateID,
		"category":    page.Category,
		"lang":        h.lang,
		"stylesheet":  h.stylesheet,
		"body":        body,
	})
	if err != nil {
		return nil, fmt.Errorf("export: html shell: %w", err)
	}
	return []byte(out), nil
}
