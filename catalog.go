package docdraft

import (
	"io/fs"

	"github.com/finaccosolutions/Document-Draft/pkg/catalog"
	"github.com/finaccosolutions/Document-Draft/pkg/export"
)

// BuiltinCatalog returns the bundled templates and categories.
func BuiltinCatalog() (*catalog.Store, error) {
	return catalog.Builtin()
}

// LoadCatalog reads template files from fsys and layers them over the
// bundled catalog. Files in fsys replace bundled templates with the same id.
func LoadCatalog(fsys fs.FS, options ...catalog.Option) (*catalog.Store, error) {
	builtin, err := catalog.Builtin()
	if err != nil {
		return nil, err
	}
	extra, err := catalog.LoadFS(fsys, options...)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(builtin, extra), nil
}

// EmbeddedTemplates exposes the bundled catalog files so callers can copy or
// extend them.
func EmbeddedTemplates() fs.FS {
	return catalog.BuiltinFS()
}

// EmbeddedShells exposes the document shells used by the html exporter.
func EmbeddedShells() fs.FS {
	return export.ShellsFS()
}
