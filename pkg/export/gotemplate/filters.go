package gotemplate

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/render"
)

// filterMu guards pongo2's global filter table.
var (
	filterMu    sync.Mutex
	defaultOnce sync.Once
)

func registerDefaultFilters() {
	defaultOnce.Do(func() {
		filterMu.Lock()
		defer filterMu.Unlock()
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
		if !pongo2.FilterExists("money") {
			_ = pongo2.RegisterFilter("money", filterMoney)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterMoney prints a value with the document decimals: `{{ total|money }}`
// or `{{ total|money:3 }}`. Non-numeric input prints as zero.
func filterMoney(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	decimals := render.DefaultDecimals
	if param != nil && param.IsInteger() {
		decimals = param.Integer()
	}
	var n float64
	switch {
	case in.IsFloat() || in.IsInteger():
		n = in.Float()
	default:
		n = model.ParseNumber(in.String())
	}
	return pongo2.AsValue(render.FormatNumber(n, decimals)), nil
}
