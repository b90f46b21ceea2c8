package placeholder

import (
	"fmt"
	"sort"
	"strings"
)

// IssueKind classifies authoring problems found while parsing.
type IssueKind string

const (
	IssueUnterminated IssueKind = "unterminated"
	IssueStrayClose   IssueKind = "stray-close"
	IssueUnknownTag   IssueKind = "unknown-tag"
)

// Issue describes a malformed construct. Parsing never fails; the construct is
// kept as literal text and reported here so template authors can see it.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Tag     string    `json:"tag"`
	Offset  int       `json:"offset"`
	Line    int       `json:"line"`
	Column  int       `json:"column"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

type blockKind int

const (
	blockRoot blockKind = iota
	blockEach
	blockIf
)

func (k blockKind) name() string {
	switch k {
	case blockEach:
		return "each"
	case blockIf:
		return "if"
	default:
		return "root"
	}
}

type frame struct {
	kind   blockKind
	key    string
	open   string
	offset int
	nodes  []Node
}

type parser struct {
	source string
	stack  []*frame
	issues []Issue
}

// Parse converts markup into a Tree. It never fails: an unterminated block
// open tag, a close tag with no matching open, and any tag outside the grammar
// are kept as literal text. Content inside an unterminated block is parsed as
// if the open tag were not there, so its placeholders still resolve.
//
// Blocks of the same or different kinds nest; a close tag closes the nearest
// open block of its kind, and any blocks opened after it that are still open
// are unwound to literal text first.
func Parse(markup string) Tree {
	p := &parser{
		source: markup,
		stack:  []*frame{{kind: blockRoot}},
	}
	for _, tok := range tokenize(markup) {
		p.consume(tok)
	}
	for len(p.stack) > 1 {
		p.unwind()
	}
	sort.SliceStable(p.issues, func(i, j int) bool {
		return p.issues[i].Offset < p.issues[j].Offset
	})
	return Tree{Nodes: mergeNodes(p.stack[0].nodes), Issues: p.issues}
}

func (p *parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *parser) emit(node Node) {
	top := p.top()
	top.nodes = append(top.nodes, node)
}

func (p *parser) consume(tok token) {
	switch tok.kind {
	case tokenText:
		p.emit(Text{Value: tok.raw, Offset: tok.pos})
	case tokenScalar:
		p.emit(Scalar{Key: tok.key, Raw: tok.raw, Offset: tok.pos})
	case tokenHelper:
		p.emit(Helper{Name: tok.name, Args: tok.args, Raw: tok.raw, Offset: tok.pos})
	case tokenEachOpen:
		p.stack = append(p.stack, &frame{kind: blockEach, key: tok.key, open: tok.raw, offset: tok.pos})
	case tokenIfOpen:
		p.stack = append(p.stack, &frame{kind: blockIf, key: tok.key, open: tok.raw, offset: tok.pos})
	case tokenEachClose:
		p.close(blockEach, tok)
	case tokenIfClose:
		p.close(blockIf, tok)
	case tokenUnknown:
		p.report(IssueUnknownTag, tok.raw, tok.pos, fmt.Sprintf("unrecognised tag %s", tok.raw))
		p.emit(Text{Value: tok.raw, Offset: tok.pos})
	}
}

func (p *parser) close(kind blockKind, tok token) {
	match := -1
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i].kind == kind {
			match = i
			break
		}
	}
	if match < 0 {
		p.report(IssueStrayClose, tok.raw, tok.pos, fmt.Sprintf("%s has no matching {{#%s}}", tok.raw, kind.name()))
		p.emit(Text{Value: tok.raw, Offset: tok.pos})
		return
	}
	for len(p.stack)-1 > match {
		p.unwind()
	}

	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	body := mergeNodes(f.nodes)
	switch f.kind {
	case blockEach:
		p.emit(Each{Key: f.key, Body: body, Offset: f.offset})
	case blockIf:
		p.emit(If{Key: f.key, Body: body, Offset: f.offset})
	case blockRoot:
	}
}

// unwind pops the innermost open block and splices its open tag and content
// into the parent as plain nodes.
func (p *parser) unwind() {
	f := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	p.report(IssueUnterminated, f.open, f.offset, fmt.Sprintf("%s is never closed with {{/%s}}", f.open, f.kind.name()))
	parent := p.top()
	parent.nodes = append(parent.nodes, Text{Value: f.open, Offset: f.offset})
	parent.nodes = append(parent.nodes, f.nodes...)
}

func (p *parser) report(kind IssueKind, tag string, offset int, message string) {
	line, column := position(p.source, offset)
	p.issues = append(p.issues, Issue{
		Kind:    kind,
		Tag:     tag,
		Offset:  offset,
		Line:    line,
		Column:  column,
		Message: message,
	})
}

func position(source string, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	prefix := source[:offset]
	line := strings.Count(prefix, "\n") + 1
	column := offset + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = offset - idx
	}
	return line, column
}

func mergeNodes(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		text, ok := node.(Text)
		if ok && len(out) > 0 {
			if last, lastOK := out[len(out)-1].(Text); lastOK {
				out[len(out)-1] = Text{Value: last.Value + text.Value, Offset: last.Offset}
				continue
			}
		}
		out = append(out, node)
	}
	return out
}
