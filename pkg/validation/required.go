package validation

import (
	"fmt"
	"strconv"

	internalmodel "github.com/finaccosolutions/Document-Draft/internal/model"
	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// Issue identifies one required field that has no usable value.
type Issue struct {
	// Path addresses the value in the record; repeater rows use
	// `line_items.0.description`.
	Path    string `json:"path"`
	Field   string `json:"field"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of a required-field check.
type Result struct {
	Valid   bool    `json:"valid"`
	Missing []Issue `json:"missing,omitempty"`
}

// Paths returns the path of every missing field.
func (r Result) Paths() []string {
	out := make([]string, 0, len(r.Missing))
	for _, issue := range r.Missing {
		out = append(out, issue.Path)
	}
	return out
}

// Required reports every required leaf field of fields that record leaves
// empty. Required repeaters need at least one row, and each row is checked
// against the repeater's required children. A required checkbox must be
// checked. Numbers are present whatever their value.
func Required(fields []model.Field, record model.Record) Result {
	missing := checkLevel(fields, record, "")
	return Result{Valid: len(missing) == 0, Missing: missing}
}

// Complete is shorthand for Required(fields, record).Valid.
func Complete(fields []model.Field, record model.Record) bool {
	return Required(fields, record).Valid
}

// Schema checks the structural rules of a field list: valid unique ids,
// known kinds, leaf-only repeater children and select options.
func Schema(fields []model.Field) error {
	return internalmodel.ValidateFields(fields)
}

func checkLevel(fields []model.Field, record model.Record, prefix string) []Issue {
	var missing []Issue
	for _, field := range fields {
		path := field.ID
		if prefix != "" {
			path = prefix + "." + field.ID
		}
		value := record.Get(field.ID)

		if field.IsRepeater() {
			rows, _ := value.Rows()
			if field.Required && len(rows) == 0 {
				missing = append(missing, newIssue(field, path, "at least one entry is required"))
			}
			for i, row := range rows {
				missing = append(missing, checkLevel(field.Children, row, path+"."+strconv.Itoa(i))...)
			}
			continue
		}

		if !field.Required {
			continue
		}
		if value.Empty() {
			message := "is required"
			if field.Kind == model.KindCheckbox {
				message = "must be checked"
			}
			missing = append(missing, newIssue(field, path, message))
		}
	}
	return missing
}

func newIssue(field model.Field, path, message string) Issue {
	return Issue{
		Path:    path,
		Field:   field.ID,
		Label:   field.Label,
		Message: fmt.Sprintf("%s %s", field.DisplayLabel(), message),
	}
}
