package ebnfkit

import (
	"strings"

	"github.com/alecthomas/ebnfkit/cursor"
)

// NodeType identifies the shape of a Node.
type NodeType int

// Node types.
const (
	// LeafNode holds literal input text and has no children.
	LeafNode NodeType = iota
	SequenceNode
	RepetitionNode
	OptionalNode
	// RuleNode is the match of a Rule.
	RuleNode
)

func (t NodeType) String() string {
	switch t {
	case LeafNode:
		return "Leaf"
	case SequenceNode:
		return "Sequence"
	case RepetitionNode:
		return "Repetition"
	case OptionalNode:
		return "Optional"
	case RuleNode:
		return "Rule"
	}
	return "Unknown"
}

// A Node in the parse tree.
//
// Concatenating the text of every leaf beneath a Node, left to right, reproduces exactly the
// input it matched.
type Node struct {
	Type NodeType
	// Name of the rule (RuleNode only).
	Name string
	// Lexical is true for nodes matched by a lexical rule.
	Lexical bool
	// Text of a LeafNode.
	Text     string
	Children []*Node
	Pos      cursor.Position
	EndPos   cursor.Position
}

// Kind returns the rule name of a RuleNode, or the name of the node type otherwise.
func (n *Node) Kind() string {
	if n.Type == RuleNode {
		return n.Name
	}
	return n.Type.String()
}

// String reconstructs the input text matched by this node.
func (n *Node) String() string {
	w := &strings.Builder{}
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type == LeafNode {
			w.WriteString(top.Text)
			continue
		}
		for i := len(top.Children) - 1; i >= 0; i-- {
			stack = append(stack, top.Children[i])
		}
	}
	return w.String()
}

// Rule returns the first direct child matched by the named rule, or nil.
func (n *Node) Rule(name string) *Node {
	for _, child := range n.Children {
		if child.Type == RuleNode && child.Name == name {
			return child
		}
	}
	return nil
}

// Export the tree as nested maps, slices and strings suitable for encoding/json and friends.
//
// A rule node exports as {Name: [child, ...]}, except lexical rules which export as their text
// ({Name: "text"} at the root, "text" when nested). Sequences and repetitions export as
// slices, optional nodes as their child or nil, and leaves as their text.
func (n *Node) Export() interface{} {
	if n.Type == RuleNode && n.Lexical {
		return map[string]interface{}{n.Name: n.String()}
	}
	return n.export()
}

type exporting struct {
	node   *Node
	values []interface{}
}

// Built bottom up with an explicit stack, like String.
func (n *Node) export() interface{} {
	var result interface{}
	stack := []*exporting{newExporting(n)}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		var value interface{}
		switch {
		case top.node.Type == LeafNode:
			value = top.node.Text
		case top.node.Type == RuleNode && top.node.Lexical:
			value = top.node.String()
		case len(top.values) < len(top.node.Children):
			stack = append(stack, newExporting(top.node.Children[len(top.values)]))
			continue
		default:
			value = top.node.collect(top.values)
		}
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			result = value
		} else {
			parent := stack[len(stack)-1]
			parent.values = append(parent.values, value)
		}
	}
	return result
}

func newExporting(n *Node) *exporting {
	return &exporting{node: n, values: make([]interface{}, 0, len(n.Children))}
}

// Combine the exported children of a composite node.
func (n *Node) collect(values []interface{}) interface{} {
	switch n.Type {
	case RuleNode:
		return map[string]interface{}{n.Name: values}
	case OptionalNode:
		if len(values) == 0 {
			return nil
		}
		return values[0]
	default:
		return values
	}
}
