package ast

// Node is a serialisable view of a term used by the CLI dump formats.
type Node struct {
	Kind     Kind    `json:"kind" yaml:"kind"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// ToNode converts t into its dump tree.
func ToNode(t Term) *Node {
	if t == nil {
		return nil
	}
	node := &Node{Kind: t.Kind()}
	for _, child := range Children(t) {
		node.Children = append(node.Children, ToNode(child))
	}
	return node
}
