package export

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores exporters by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[string]Exporter),
	}
}

// NewDefaultRegistry returns a registry holding the html and markup
// exporters.
func NewDefaultRegistry(options ...HTMLOption) (*Registry, error) {
	html, err := NewHTML(options...)
	if err != nil {
		return nil, err
	}
	registry := NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(NewMarkup()); err != nil {
		return nil, err
	}
	return registry, nil
}

// Register adds an exporter by its Name(). Names are case-insensitive and
// duplicates return an error.
func (r *Registry) Register(exporter Exporter) error {
	if exporter == nil {
		return fmt.Errorf("export: exporter is required")
	}
	name := normaliseName(exporter.Name())
	if name == "" {
		return fmt.Errorf("export: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[name]; exists {
		return fmt.Errorf("export: exporter %q already registered", name)
	}
	r.exporters[name] = exporter
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(exporter Exporter) {
	if err := r.Register(exporter); err != nil {
		panic(err)
	}
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exporter, ok := r.exporters[normaliseName(name)]
	if !ok {
		return nil, fmt.Errorf("export: exporter %q not found", name)
	}
	return exporter, nil
}

// List returns a sorted list of exporter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an exporter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.exporters[normaliseName(name)]
	return ok
}

func normaliseName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
