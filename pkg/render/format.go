package render

import (
	"strconv"
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
)

// FormatNumber prints n with the given fraction digits. NaN and infinities
// print as zero and a negative value that rounds to zero loses its sign.
func FormatNumber(n float64, decimals int) string {
	out := strconv.FormatFloat(model.Finite(n), 'f', decimals, 64)
	if strings.HasPrefix(out, "-") && strings.Trim(out[1:], "0.") == "" {
		return out[1:]
	}
	return out
}

func (r *Renderer) format(n float64) string {
	return FormatNumber(n, r.decimals)
}
