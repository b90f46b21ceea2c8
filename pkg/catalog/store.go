package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// ErrNotFound reports a template or category id the store does not hold.
var ErrNotFound = errors.New("not found")

// Store is an immutable, ordered set of templates and categories.
type Store struct {
	templates  map[string]model.Template
	order      []string
	categories []model.Category
	categoryBy map[string]int
}

func newStore() *Store {
	return &Store{
		templates:  make(map[string]model.Template),
		categoryBy: make(map[string]int),
	}
}

// New builds a store from in-memory values. Duplicate template or category
// ids are rejected.
func New(templates []model.Template, categories []model.Category) (*Store, error) {
	s := newStore()
	for _, cat := range categories {
		if err := s.addCategory(cat, "memory"); err != nil {
			return nil, err
		}
	}
	for _, tpl := range templates {
		if err := s.addTemplate(tpl, "memory"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Merge layers stores on top of each other. Templates and categories in later
// stores replace entries with the same id in earlier ones; the order of first
// appearance is kept.
func Merge(stores ...*Store) *Store {
	out := newStore()
	for _, s := range stores {
		if s == nil {
			continue
		}
		for _, cat := range s.categories {
			if idx, ok := out.categoryBy[cat.ID]; ok {
				out.categories[idx] = cat
				continue
			}
			out.categoryBy[cat.ID] = len(out.categories)
			out.categories = append(out.categories, cat)
		}
		for _, id := range s.order {
			if _, ok := out.templates[id]; !ok {
				out.order = append(out.order, id)
			}
			out.templates[id] = s.templates[id]
		}
	}
	return out
}

func (s *Store) addTemplate(tpl model.Template, source string) error {
	if tpl.ID == "" {
		return fmt.Errorf("catalog: %s defines a template without an id", source)
	}
	if _, exists := s.templates[tpl.ID]; exists {
		return fmt.Errorf("catalog: duplicate template %q (%s)", tpl.ID, source)
	}
	s.templates[tpl.ID] = tpl
	s.order = append(s.order, tpl.ID)
	return nil
}

func (s *Store) addCategory(cat model.Category, source string) error {
	id := strings.TrimSpace(cat.ID)
	if id == "" {
		return fmt.Errorf("catalog: %s defines a category without an id", source)
	}
	if _, exists := s.categoryBy[id]; exists {
		return fmt.Errorf("catalog: duplicate category %q (%s)", id, source)
	}
	cat.ID = id
	if cat.Name == "" {
		cat.Name = id
	}
	s.categoryBy[id] = len(s.categories)
	s.categories = append(s.categories, cat)
	return nil
}

// Template returns the template with id or an error wrapping ErrNotFound.
func (s *Store) Template(id string) (model.Template, error) {
	if s != nil {
		if tpl, ok := s.templates[id]; ok {
			return tpl, nil
		}
	}
	return model.Template{}, fmt.Errorf("catalog: template %q %w", id, ErrNotFound)
}

// Templates lists every template in load order.
func (s *Store) Templates() []model.Template {
	if s == nil {
		return nil
	}
	out := make([]model.Template, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.templates[id])
	}
	return out
}

// Len reports the number of templates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Categories lists every category in load order.
func (s *Store) Categories() []model.Category {
	if s == nil {
		return nil
	}
	return append([]model.Category(nil), s.categories...)
}

// Category returns the category with id or an error wrapping ErrNotFound.
func (s *Store) Category(id string) (model.Category, error) {
	if s != nil {
		if idx, ok := s.categoryBy[id]; ok {
			return s.categories[idx], nil
		}
	}
	return model.Category{}, fmt.Errorf("catalog: category %q %w", id, ErrNotFound)
}

// ByCategory lists the templates filed under category, in load order.
func (s *Store) ByCategory(category string) []model.Template {
	var out []model.Template
	for _, tpl := range s.Templates() {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}

// Counts reports how many templates each category holds.
func (s *Store) Counts() map[string]int {
	out := make(map[string]int)
	for _, tpl := range s.Templates() {
		out[tpl.Category]++
	}
	return out
}

// Search fuzzy-matches query against each template's name, description, id
// and category, best match first. An empty query lists every template.
func (s *Store) Search(query string) []model.Template {
	templates := s.Templates()
	query = strings.TrimSpace(query)
	if query == "" {
		return templates
	}

	haystack := make([]string, len(templates))
	for i, tpl := range templates {
		haystack[i] = strings.Join([]string{tpl.Name, tpl.Description, tpl.ID, tpl.Category}, " ")
	}

	matches := fuzzy.Find(query, haystack)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	out := make([]model.Template, 0, len(matches))
	for _, match := range matches {
		out = append(out, templates[match.Index])
	}
	return out
}
