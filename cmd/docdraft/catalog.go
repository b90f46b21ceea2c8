package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// loadCatalog layers templates from dir over the built-in catalog.
func loadCatalog(dir string) (*catalog.Store, error) {
	builtin, err := catalog.Builtin()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return builtin, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog dir: %s is not a directory", dir)
	}
	extra, err := catalog.LoadFS(os.DirFS(dir), catalog.WithMarkupLint())
	if err != nil {
		return nil, err
	}
	return catalog.Merge(builtin, extra), nil
}

// readRecord decodes a JSON or YAML data file. "-" reads stdin.
func readRecord(path string, stdin func() ([]byte, error)) (model.Record, error) {
	if strings.TrimSpace(path) == "" {
		return model.Record{}, nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = stdin()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	record, err := model.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	return record, nil
}

// readMarkupFile loads an ad-hoc template body. Files ending in .md are
// treated as markdown.
func readMarkupFile(path string) (model.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Template{}, fmt.Errorf("read markup: %w", err)
	}
	format := model.FormatHTML
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		format = model.FormatMarkdown
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return model.Template{ID: stem, Name: stem, Format: format, Markup: string(data)}, nil
}
