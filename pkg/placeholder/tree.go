package placeholder

// HelperMultiply is the `{{multiply a b}}` helper name.
const HelperMultiply = "multiply"

// Node is one element of a parsed template body.
type Node interface {
	// Pos is the byte offset of the node in the source markup.
	Pos() int
}

// Text is literal markup emitted unchanged.
type Text struct {
	Value  string
	Offset int
}

// Scalar is a `{{key}}` placeholder.
type Scalar struct {
	Key    string
	Raw    string
	Offset int
}

// Each is a `{{#each key}}...{{/each}}` repeater block.
type Each struct {
	Key    string
	Body   []Node
	Offset int
}

// If is a `{{#if key}}...{{/if}}` conditional block.
type If struct {
	Key    string
	Body   []Node
	Offset int
}

// Helper is an inline helper call such as `{{multiply a b}}`.
type Helper struct {
	Name   string
	Args   []string
	Raw    string
	Offset int
}

func (n Text) Pos() int   { return n.Offset }
func (n Scalar) Pos() int { return n.Offset }
func (n Each) Pos() int   { return n.Offset }
func (n If) Pos() int     { return n.Offset }
func (n Helper) Pos() int { return n.Offset }

// Tree is the parsed form of a markup string.
type Tree struct {
	Nodes  []Node
	Issues []Issue
}

// Visit walks nodes depth first, calling fn for every node.
func Visit(nodes []Node, fn func(Node)) {
	for _, node := range nodes {
		fn(node)
		switch n := node.(type) {
		case Each:
			Visit(n.Body, fn)
		case If:
			Visit(n.Body, fn)
		}
	}
}

// Keys returns every data key the tree references, in first-seen order.
// Helper arguments and block keys are included.
func (t Tree) Keys() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	Visit(t.Nodes, func(node Node) {
		switch n := node.(type) {
		case Scalar:
			add(n.Key)
		case Each:
			add(n.Key)
		case If:
			add(n.Key)
		case Helper:
			for _, arg := range n.Args {
				add(arg)
			}
		case Text:
		}
	})
	return out
}
