package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/validation"
)

// ErrIncomplete is returned when a request demands a complete record and
// required fields are missing.
var ErrIncomplete = errors.New("generator: required fields are missing")

// IncompleteError carries the missing fields of a rejected request.
type IncompleteError struct {
	TemplateID string
	Missing    []validation.Issue
}

func (e *IncompleteError) Error() string {
	paths := make([]string, 0, len(e.Missing))
	for _, issue := range e.Missing {
		paths = append(paths, issue.Path)
	}
	return fmt.Sprintf("generator: template %q: required fields are missing: %s", e.TemplateID, strings.Join(paths, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
