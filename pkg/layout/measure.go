// Package layout renders a phylogenetic tree into a 2D drawing program:
// node coordinates, branch segments, label placements, and an optional
// branch-length scale bar.
//
// The pipeline is measure → margins → resolve → draw, executed as one pure,
// synchronous call per render. Vertical positions are kept in tip units (one
// tip = 1.0) and horizontal positions in branch-length units until the final
// scaling against the resolved frame, so the recursive passes never depend on
// pixel dimensions.
package layout

import "github.com/apcamargo/phylodraw/pkg/tree"

// epsilon guards scale-factor divisions on degenerate trees.
const epsilon = 1e-9

// Measured is a tree node annotated with layout measurements. It is rebuilt
// for every render call and consumed immediately by the drawer.
type Measured struct {
	Name   string
	YLocal float64 // vertical center within the subtree, in tip units
	XLen   float64 // horizontal branch length in layout units
	Height float64 // subtree height in tip units
	Depth  float64 // cumulative branch length from this node to its deepest tip
	Leaf   bool
	Kids   []MeasuredChild
}

// MeasuredChild pairs a measured child with its vertical offset inside the
// parent's subtree.
type MeasuredChild struct {
	Node    *Measured
	YOffset float64
}

// Measure recursively computes subtree heights, depths, and vertical centers
// for the whole tree. In cladogram mode all branch lengths collapse to one
// unit (zero for the root) regardless of the input lengths.
//
// For a tree with N tips the returned root has Height == N exactly, and
// Depth equals the maximum root-to-tip cumulative branch length.
func Measure(root *tree.Node, cladogram bool) *Measured {
	return measure(root, cladogram, true)
}

func measure(n *tree.Node, cladogram bool, isRoot bool) *Measured {
	m := &Measured{
		Name: n.Name,
		XLen: branchLength(n, cladogram, isRoot),
		Leaf: n.IsLeaf(),
	}

	if m.Leaf {
		m.Height = 1.0
		m.YLocal = 0.5
		m.Depth = m.XLen
		return m
	}

	currentY := 0.0
	maxChildDepth := 0.0
	for _, c := range n.Children {
		child := measure(c, cladogram, false)
		m.Kids = append(m.Kids, MeasuredChild{Node: child, YOffset: currentY})
		currentY += child.Height
		if child.Depth > maxChildDepth {
			maxChildDepth = child.Depth
		}
	}

	m.Height = currentY
	m.Depth = maxChildDepth + m.XLen

	// Center between the first and last child's absolute centers, not the
	// average of all children. This is the classic phylogram balance.
	first := m.Kids[0]
	last := m.Kids[len(m.Kids)-1]
	m.YLocal = ((first.YOffset + first.Node.YLocal) + (last.YOffset + last.Node.YLocal)) / 2

	return m
}

// branchLength resolves a node's horizontal extent. Cladograms ignore the
// input lengths entirely; otherwise missing lengths default to one tip unit
// for leaves and zero for internal nodes and the root.
func branchLength(n *tree.Node, cladogram bool, isRoot bool) float64 {
	if cladogram {
		if isRoot {
			return 0.0
		}
		return 1.0
	}
	if n.Length != nil {
		return *n.Length
	}
	if isRoot || !n.IsLeaf() {
		return 0.0
	}
	return 1.0
}
