package model

import "github.com/finaccosolutions/Document-Draft/pkg/model"

// Options configures the behaviour of the Builder.
type Options struct {
	// Labeler derives a label for fields and templates that omit one.
	Labeler func(string) string
	// KindAliases maps input types from other form tools onto known kinds.
	KindAliases map[string]model.FieldKind
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
		KindAliases: map[string]model.FieldKind{
			"email":    model.KindText,
			"tel":      model.KindText,
			"url":      model.KindText,
			"string":   model.KindText,
			"integer":  model.KindNumber,
			"float":    model.KindNumber,
			"boolean":  model.KindCheckbox,
			"bool":     model.KindCheckbox,
			"array":    model.KindRepeater,
			"list":     model.KindRepeater,
			"textarea": model.KindTextarea,
		},
	}
}
