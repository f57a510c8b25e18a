package layout

import (
	"math"
	"testing"

	"github.com/apcamargo/phylodraw/pkg/tree"
)

func lengthOf(v float64) *float64 { return &v }

// sampleTree builds ((A:0.1,B:0.2):0.3,C:0.5).
func sampleTree() *tree.Tree {
	return &tree.Tree{
		Root: &tree.Node{
			Children: []*tree.Node{
				{
					Length: lengthOf(0.3),
					Children: []*tree.Node{
						{Name: "A", Length: lengthOf(0.1)},
						{Name: "B", Length: lengthOf(0.2)},
					},
				},
				{Name: "C", Length: lengthOf(0.5)},
			},
		},
	}
}

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeasureHeightEqualsTipCount(t *testing.T) {
	tests := []struct {
		name string
		root *tree.Node
		want float64
	}{
		{
			name: "single leaf",
			root: &tree.Node{Name: "A"},
			want: 1,
		},
		{
			name: "three tips",
			root: sampleTree().Root,
			want: 3,
		},
		{
			name: "five tips nested",
			root: &tree.Node{Children: []*tree.Node{
				{Children: []*tree.Node{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
				{Children: []*tree.Node{{Name: "D"}, {Name: "E"}}},
			}},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Measure(tt.root, false)
			if m.Height != tt.want {
				t.Errorf("Height = %v, want %v", m.Height, tt.want)
			}
		})
	}
}

func TestMeasureDepth(t *testing.T) {
	m := Measure(sampleTree().Root, false)

	// Deepest path is C at 0.5; the (A,B) clade reaches only 0.3+0.2.
	if !almost(m.Depth, 0.5) {
		t.Errorf("Depth = %v, want 0.5", m.Depth)
	}

	inner := m.Kids[0].Node
	if !almost(inner.Depth, 0.5) {
		t.Errorf("inner Depth = %v, want 0.5", inner.Depth)
	}
}

func TestMeasureYLocal(t *testing.T) {
	m := Measure(sampleTree().Root, false)

	// (A,B) clade: children at offsets 0 and 1, both centered at 0.5.
	inner := m.Kids[0].Node
	if !almost(inner.YLocal, 1.0) {
		t.Errorf("inner YLocal = %v, want 1.0", inner.YLocal)
	}

	// Root: midpoint of the clade center (0+1.0) and C's center (2+0.5).
	if !almost(m.YLocal, 1.75) {
		t.Errorf("root YLocal = %v, want 1.75", m.YLocal)
	}
}

func TestMeasureYLocalUsesFirstAndLastChildOnly(t *testing.T) {
	// Middle child is much taller; the center must ignore it.
	root := &tree.Node{Children: []*tree.Node{
		{Name: "A"},
		{Children: []*tree.Node{{Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}, {Name: "F"}}},
		{Name: "G"},
	}}

	m := Measure(root, false)
	// First child centered at 0.5, last at offset 6 centered 0.5.
	if !almost(m.YLocal, 3.5) {
		t.Errorf("YLocal = %v, want 3.5", m.YLocal)
	}
}

func TestMeasureChildOffsets(t *testing.T) {
	m := Measure(sampleTree().Root, false)

	if !almost(m.Kids[0].YOffset, 0) {
		t.Errorf("first child offset = %v, want 0", m.Kids[0].YOffset)
	}
	if !almost(m.Kids[1].YOffset, 2) {
		t.Errorf("second child offset = %v, want 2", m.Kids[1].YOffset)
	}
}

func TestMeasureCladogram(t *testing.T) {
	m := Measure(sampleTree().Root, true)

	if m.XLen != 0 {
		t.Errorf("root XLen = %v, want 0", m.XLen)
	}

	var check func(*Measured)
	check = func(n *Measured) {
		for _, kid := range n.Kids {
			if kid.Node.XLen != 1.0 {
				t.Errorf("node %q XLen = %v, want 1.0", kid.Node.Name, kid.Node.XLen)
			}
			check(kid.Node)
		}
	}
	check(m)

	// Two levels of unit branches below the root.
	if !almost(m.Depth, 2.0) {
		t.Errorf("Depth = %v, want 2.0", m.Depth)
	}
}

func TestMeasureDefaultLengths(t *testing.T) {
	// No lengths anywhere: leaves default to 1, internal nodes and root to 0.
	root := &tree.Node{Children: []*tree.Node{
		{Children: []*tree.Node{{Name: "A"}, {Name: "B"}}},
		{Name: "C"},
	}}

	m := Measure(root, false)
	if m.XLen != 0 {
		t.Errorf("root XLen = %v, want 0", m.XLen)
	}
	if inner := m.Kids[0].Node; inner.XLen != 0 {
		t.Errorf("internal XLen = %v, want 0", inner.XLen)
	}
	if leaf := m.Kids[1].Node; leaf.XLen != 1.0 {
		t.Errorf("leaf XLen = %v, want 1.0", leaf.XLen)
	}
	if !almost(m.Depth, 1.0) {
		t.Errorf("Depth = %v, want 1.0", m.Depth)
	}
}

func TestMeasureSingleNode(t *testing.T) {
	m := Measure(&tree.Node{Name: "only"}, false)

	if !m.Leaf {
		t.Error("single node should measure as a leaf")
	}
	if m.Height != 1.0 {
		t.Errorf("Height = %v, want 1.0", m.Height)
	}
	if !almost(m.YLocal, 0.5) {
		t.Errorf("YLocal = %v, want 0.5", m.YLocal)
	}
	if m.Depth != 0 {
		t.Errorf("Depth = %v, want 0 (root default length)", m.Depth)
	}
}
