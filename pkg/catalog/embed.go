package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed builtin
var embeddedCatalog embed.FS

// BuiltinFS returns the bundled catalog files.
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "builtin")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var (
	builtinOnce  sync.Once
	builtinStore *Store
	builtinErr   error
)

// Builtin returns the store holding the bundled templates and categories.
// The bundle is parsed once and shared.
func Builtin() (*Store, error) {
	builtinOnce.Do(func() {
		builtinStore, builtinErr = LoadFS(BuiltinFS(), WithStrictCategories(), WithMarkupLint())
	})
	return builtinStore, builtinErr
}

// MustBuiltin is Builtin for callers that treat a broken bundle as fatal.
func MustBuiltin() *Store {
	store, err := Builtin()
	if err != nil {
		panic(err)
	}
	return store
}
