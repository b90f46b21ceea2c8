package render

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

func (r *Renderer) escape(value string) string {
	switch r.escaping {
	case EscapeHTML:
		return html.EscapeString(value)
	case EscapeStrip:
		if value == "" {
			return ""
		}
		return stripSanitizer().Sanitize(value)
	case EscapeNone:
		return value
	default:
		return value
	}
}

func stripSanitizer() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}
