package layout

import (
	"github.com/apcamargo/phylodraw/pkg/text"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// LabelGap is the fixed spacing between a branch tip and its label.
const LabelGap = 4.0

// Margins is the space reserved around the drawable area.
type Margins struct {
	Tip    float64 // depth-axis space for tip labels
	Root   float64 // depth-axis space for the root label and stub branch
	YStart float64 // spread-axis top offset before drawing begins
}

// ComputeMargins derives the reserved space from the measured label extents.
// It only computes values; it never rejects input.
//
// Vertical trees are authored horizontally and rotated a quarter turn at the
// end, so the root label's extent along the depth axis is its height rather
// than its width, and the y-start margin additionally reserves one tip-label
// height for the rotated tip labels.
func ComputeMargins(m text.Metrics, st *Style, t *tree.Tree) Margins {
	tipW, tipH := maxTipExtent(m, st, t.Root)

	mg := Margins{
		Tip:    tipW + LabelGap,
		YStart: tipH / 2,
	}

	if name := t.Root.Name; name != "" {
		ext := m.Measure(name, st.InnerSize, text.Style{Italic: st.InnerItalic})
		rootExt := ext.W
		if st.IsVertical() {
			rootExt = ext.H
		}
		mg.Root = rootExt + LabelGap
	}
	if t.Rooted {
		mg.Root += st.RootLength
	}

	if st.IsVertical() {
		mg.YStart += tipH
	}

	return mg
}

// maxTipExtent measures every leaf label and returns the widest and tallest
// extents found.
func maxTipExtent(m text.Metrics, st *Style, n *tree.Node) (w, h float64) {
	if n.IsLeaf() {
		ext := m.Measure(n.Name, st.TipSize, text.Style{Italic: st.TipItalic})
		return ext.W, ext.H
	}
	for _, c := range n.Children {
		cw, ch := maxTipExtent(m, st, c)
		if cw > w {
			w = cw
		}
		if ch > h {
			h = ch
		}
	}
	return w, h
}
