package gotemplate

import (
	"fmt"
	"io"

	gotemplatepkg "github.com/goliatone/go-template"
)

// Renderer is the part of a go-template engine that document shells need.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// NewShared builds a go-template engine for shells configured the
// go-template way, e.g. when an application already loads its own templates
// through go-template and wants documents to share that setup.
func NewShared(options ...gotemplatepkg.Option) (Renderer, error) {
	engine, err := gotemplatepkg.NewRenderer(options...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	return engine, nil
}
