package render

import (
	"strings"

	"github.com/finaccosolutions/Document-Draft/pkg/model"
	"github.com/finaccosolutions/Document-Draft/pkg/placeholder"
)

// scope chains repeater rows onto the enclosing record so row keys shadow
// document keys and anything the row lacks falls through.
type scope struct {
	record model.Record
	parent *scope
}

func (s *scope) lookup(key string) (model.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.record.Has(key) {
			return cur.record.Get(key), true
		}
	}
	return model.Null(), false
}

func (r *Renderer) evalNodes(b *strings.Builder, nodes []placeholder.Node, s *scope) {
	for _, node := range nodes {
		r.evalNode(b, node, s)
	}
}

func (r *Renderer) evalNode(b *strings.Builder, node placeholder.Node, s *scope) {
	switch n := node.(type) {
	case placeholder.Text:
		b.WriteString(n.Value)
	case placeholder.Scalar:
		b.WriteString(r.scalar(n.Key, s))
	case placeholder.Each:
		value, _ := s.lookup(n.Key)
		rows, ok := value.Rows()
		if !ok {
			return
		}
		for _, row := range rows {
			r.evalNodes(b, n.Body, &scope{record: row, parent: s})
		}
	case placeholder.If:
		value, _ := s.lookup(n.Key)
		if value.Truthy() {
			r.evalNodes(b, n.Body, s)
		}
	case placeholder.Helper:
		b.WriteString(r.helper(n, s))
	}
}

func (r *Renderer) scalar(key string, s *scope) string {
	value, ok := s.lookup(key)
	if !ok {
		return ""
	}
	if r.IsNumericField(key) {
		return r.format(value.Float())
	}
	return r.escape(value.Text())
}

func (r *Renderer) helper(n placeholder.Helper, s *scope) string {
	switch n.Name {
	case placeholder.HelperMultiply:
		product := 1.0
		for _, arg := range n.Args {
			value, _ := s.lookup(arg)
			product *= value.Float()
		}
		return r.format(product)
	default:
		return n.Raw
	}
}
