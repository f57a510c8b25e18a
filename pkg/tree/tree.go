// Package tree defines the input tree model for the layout engine.
//
// A tree arrives pre-parsed from an external collaborator (for example a
// Newick parser) as a JSON value of the shape
//
//	{
//	  "rooted": true,
//	  "name": "root",
//	  "length": null,
//	  "children": [ {"name": "A", "length": 0.12}, ... ]
//	}
//
// [Decode] validates this shape field by field before the layout engine ever
// sees it; the engine itself never rejects a decoded tree.
package tree

// Node is a single node of an input tree. Leaves have no children.
// Length is the branch length to the parent; nil means unspecified and the
// measurer substitutes a default.
type Node struct {
	Name     string
	Length   *float64
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tips returns the number of leaves in the subtree rooted at n.
func (n *Node) Tips() int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Tips()
	}
	return total
}

// Tree is a complete input tree. Rooted trees are drawn with a stub branch
// leading into the root.
type Tree struct {
	Root   *Node
	Rooted bool
}

// Tips returns the number of leaves in the tree.
func (t *Tree) Tips() int { return t.Root.Tips() }
