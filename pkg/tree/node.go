// Package tree provides the canonical syntax-tree node structure shared by
// parsers, the walker, and the lint engine. A node carries a type tag, an
// optional token value for leaves, source positions, and ordered named child
// fields. The structure is language-agnostic: parsers decide which types and
// field names exist.
package tree

// Program is the canonical top-level node type produced by parsers.
const Program = "Program"

// Positions holds the byte and line/column offsets for a node or token.
// StartOffset/EndOffset are 0-based byte offsets forming a half-open range;
// line and column fields are 1-based.
type Positions struct {
	StartLine   int `json:"start_line,omitempty"`
	StartCol    int `json:"start_col,omitempty"`
	StartOffset int `json:"start_offset,omitempty"`
	EndLine     int `json:"end_line,omitempty"`
	EndCol      int `json:"end_col,omitempty"`
	EndOffset   int `json:"end_offset,omitempty"`
}

// Node is a discriminated syntax-tree record. Child values live in named
// fields whose insertion order is preserved so that traversal stays
// deterministic even when a parser supplies no visitor-key map.
//
// Nodes are immutable by contract once a parse result is handed to the
// engine; nothing in this package writes to a node after construction.
type Node struct {
	Type  string
	Token string
	Pos   *Positions

	fields map[string]any
	order  []string
}

// NewNode creates a node with the given type tag.
func NewNode(nodeType string) *Node {
	return &Node{Type: nodeType}
}

// SetField stores a named child value. Accepted values are *Node, []*Node,
// or any scalar (scalars are ignored by traversal). Setting an existing
// field replaces the value but keeps its original position in the order.
func (n *Node) SetField(name string, value any) {
	if n.fields == nil {
		n.fields = make(map[string]any)
	}

	if _, exists := n.fields[name]; !exists {
		n.order = append(n.order, name)
	}

	n.fields[name] = value
}

// Field returns the named child value, or nil if absent.
func (n *Node) Field(name string) any {
	return n.fields[name]
}

// FieldNames returns the field names in insertion order. The returned slice
// is shared; callers must not modify it.
func (n *Node) FieldNames() []string {
	return n.order
}

// Range returns the node's half-open byte offset range. A node without
// position information reports [0, 0).
func (n *Node) Range() (start, end int) {
	if n.Pos == nil {
		return 0, 0
	}

	return n.Pos.StartOffset, n.Pos.EndOffset
}

// ChildNodes returns the node values stored under the given field, in order.
// A single-node field yields one element; scalar fields yield none.
func (n *Node) ChildNodes(field string) []*Node {
	switch value := n.fields[field].(type) {
	case *Node:
		if value == nil {
			return nil
		}

		return []*Node{value}
	case []*Node:
		return value
	default:
		return nil
	}
}

// NodeBuilder provides a fluent interface for constructing nodes.
type NodeBuilder struct {
	node *Node
}

// NewBuilder creates a builder for a node of the given type.
func NewBuilder(nodeType string) *NodeBuilder {
	return &NodeBuilder{node: NewNode(nodeType)}
}

// WithToken sets the leaf token value.
func (builder *NodeBuilder) WithToken(token string) *NodeBuilder {
	builder.node.Token = token

	return builder
}

// WithPositions sets the node position info.
func (builder *NodeBuilder) WithPositions(pos *Positions) *NodeBuilder {
	builder.node.Pos = pos

	return builder
}

// WithField adds a named child value.
func (builder *NodeBuilder) WithField(name string, value any) *NodeBuilder {
	builder.node.SetField(name, value)

	return builder
}

// Build returns the constructed node.
func (builder *NodeBuilder) Build() *Node {
	return builder.node
}
