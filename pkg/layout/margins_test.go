package layout

import (
	"testing"

	"github.com/apcamargo/phylodraw/pkg/text"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// metricsForTest is the deterministic heuristic measurer: width is
// 0.55·size per rune (×1.04 when italic), height is 0.72·size.
var metricsForTest = text.NewHeuristic()

func plainStyle() Style {
	st := DefaultStyle()
	st.TipItalic = false
	st.InnerItalic = false
	return st
}

func TestComputeMarginsTip(t *testing.T) {
	st := plainStyle()
	tr := &tree.Tree{Root: &tree.Node{Children: []*tree.Node{
		{Name: "AB"},     // 2 runes → 11.0 wide at size 10
		{Name: "ABCD"},   // 4 runes → 22.0 wide
	}}}

	mg := ComputeMargins(metricsForTest, &st, tr)
	if !almost(mg.Tip, 22.0+LabelGap) {
		t.Errorf("Tip = %v, want %v", mg.Tip, 22.0+LabelGap)
	}
}

func TestComputeMarginsRoot(t *testing.T) {
	twoTips := func(rootName string) *tree.Node {
		return &tree.Node{Name: rootName, Children: []*tree.Node{{Name: "A"}, {Name: "B"}}}
	}

	tests := []struct {
		name     string
		tree     *tree.Tree
		vertical bool
		want     float64
	}{
		{
			name: "unrooted unnamed",
			tree: &tree.Tree{Root: twoTips("")},
			want: 0,
		},
		{
			name: "rooted unnamed reserves the stub",
			tree: &tree.Tree{Root: twoTips(""), Rooted: true},
			want: 10.0, // DefaultStyle root length
		},
		{
			name: "named root uses label width horizontally",
			tree: &tree.Tree{Root: twoTips("RT")},
			want: 2*8*0.55 + LabelGap, // 2 runes at inner size 8
		},
		{
			name: "named rooted adds both",
			tree: &tree.Tree{Root: twoTips("RT"), Rooted: true},
			want: 2*8*0.55 + LabelGap + 10.0,
		},
		{
			name:     "named root uses label height vertically",
			tree:     &tree.Tree{Root: twoTips("RT")},
			vertical: true,
			want:     8*0.72 + LabelGap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := plainStyle()
			if tt.vertical {
				st.Orientation = OrientationVertical
			}
			mg := ComputeMargins(metricsForTest, &st, tt.tree)
			if !almost(mg.Root, tt.want) {
				t.Errorf("Root = %v, want %v", mg.Root, tt.want)
			}
		})
	}
}

func TestComputeMarginsYStart(t *testing.T) {
	st := plainStyle()
	tr := &tree.Tree{Root: &tree.Node{Children: []*tree.Node{{Name: "A"}, {Name: "B"}}}}

	tipH := 10 * 0.72

	mg := ComputeMargins(metricsForTest, &st, tr)
	if !almost(mg.YStart, tipH/2) {
		t.Errorf("horizontal YStart = %v, want %v", mg.YStart, tipH/2)
	}

	// Vertical trees reserve one extra tip-label height for the rotated labels.
	st.Orientation = OrientationVertical
	mg = ComputeMargins(metricsForTest, &st, tr)
	if !almost(mg.YStart, tipH/2+tipH) {
		t.Errorf("vertical YStart = %v, want %v", mg.YStart, tipH/2+tipH)
	}
}
