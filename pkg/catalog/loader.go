package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	internalmodel "github.com/finaccosolutions/Document-Draft/internal/model"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/placeholder"
)

// Option configures LoadFS.
type Option func(*loadConfig)

type loadConfig struct {
	labeler          func(string) string
	strictCategories bool
	lint             bool
}

// WithLabeler derives labels for fields that omit one.
func WithLabeler(fn func(string) string) Option {
	return func(c *loadConfig) {
		c.labeler = fn
	}
}

// WithStrictCategories rejects templates filed under a category the catalog
// does not define.
func WithStrictCategories() Option {
	return func(c *loadConfig) {
		c.strictCategories = true
	}
}

// WithMarkupLint rejects templates whose markup contains malformed
// placeholder constructs. By default such markup loads and renders literally.
func WithMarkupLint() Option {
	return func(c *loadConfig) {
		c.lint = true
	}
}

// LoadFS walks fsys and parses every JSON/YAML file. A file holds either a
// single template, or a bundle with `templates` and/or `categories` lists.
// A nil fsys yields an empty store.
func LoadFS(fsys fs.FS, options ...Option) (*Store, error) {
	cfg := loadConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	store := newStore()
	if fsys == nil {
		return store, nil
	}

	builder := internalmodel.New(internalmodel.Options{Labeler: cfg.labeler})
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, cat := range doc.Categories {
			if err := store.addCategory(cat, path); err != nil {
				return err
			}
		}
		for _, raw := range doc.templates() {
			tpl, err := builder.Build(raw)
			if err != nil {
				return fmt.Errorf("catalog: %s: %w", path, err)
			}
			if cfg.lint {
				if issues := lintMarkup(tpl.Markup); len(issues) > 0 {
					return fmt.Errorf("catalog: %s: template %q: %s", path, tpl.ID, issues[0])
				}
			}
			if err := store.addTemplate(tpl, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.strictCategories {
		for _, tpl := range store.Templates() {
			if tpl.Category == "" {
				continue
			}
			if _, ok := store.categoryBy[tpl.Category]; !ok {
				return nil, fmt.Errorf("catalog: template %q references unknown category %q", tpl.ID, tpl.Category)
			}
		}
	}
	return store, nil
}

type documentFile struct {
	internalmodel.RawTemplate `yaml:",inline"`

	Templates  []internalmodel.RawTemplate `json:"templates" yaml:"templates"`
	Categories []model.Category            `json:"categories" yaml:"categories"`
}

func (d documentFile) templates() []internalmodel.RawTemplate {
	out := append([]internalmodel.RawTemplate(nil), d.Templates...)
	if d.ID != "" {
		out = append(out, d.RawTemplate)
	}
	return out
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func lintMarkup(markup string) []placeholder.Issue {
	return placeholder.Parse(markup).Issues
}
