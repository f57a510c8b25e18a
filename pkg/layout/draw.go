package layout

import "github.com/apcamargo/phylodraw/pkg/text"

// drawState carries the read-only context threaded through the recursive
// node walk: the style bundle, the resolved scale factors, and the metrics
// provider for internal-node labels.
type drawState struct {
	style        *Style
	metrics      text.Metrics
	rooted       bool
	labelYOffset float64 // x-height baseline correction for tip labels
	xScale       float64 // layout units per branch-length unit
	yScale       float64 // layout units per tip unit
}

// drawNode walks the measured tree depth-first, emitting branch segments and
// label placements in the pre-rotation coordinate frame. Output order is the
// pre-order traversal of the children as given.
func drawNode(p *Program, n *Measured, xOff, yOff float64, isRoot bool, ds *drawState) {
	myX := xOff + n.XLen*ds.xScale
	myY := yOff + n.YLocal*ds.yScale

	if !isRoot && n.XLen > 0 {
		p.AddLine(Line{
			From:  Point{X: xOff, Y: myY},
			To:    Point{X: myX, Y: myY},
			Width: ds.style.StrokeWidth,
			Color: ds.style.StrokeColor,
		})
	}

	// Rooted trees get a dotted stub leading into the root, independent of
	// whether the root also has a true branch segment.
	if isRoot && ds.rooted {
		p.AddLine(Line{
			From:   Point{X: myX - ds.style.RootLength, Y: myY},
			To:     Point{X: myX, Y: myY},
			Width:  ds.style.StrokeWidth,
			Color:  ds.style.StrokeColor,
			Dashed: true,
		})
	}

	if n.Leaf {
		p.AddLabel(Label{
			Text:   n.Name,
			Pos:    Point{X: myX + LabelGap, Y: myY - ds.labelYOffset},
			Size:   ds.style.TipSize,
			Color:  ds.style.TipColor,
			Italic: ds.style.TipItalic,
		})
		return
	}

	// Vertical connector spanning the first and last child's centers,
	// computed in this node's frame before descending.
	first := n.Kids[0]
	last := n.Kids[len(n.Kids)-1]
	firstY := yOff + (first.YOffset+first.Node.YLocal)*ds.yScale
	lastY := yOff + (last.YOffset+last.Node.YLocal)*ds.yScale
	p.AddLine(Line{
		From:  Point{X: myX, Y: firstY},
		To:    Point{X: myX, Y: lastY},
		Width: ds.style.StrokeWidth,
		Color: ds.style.StrokeColor,
	})

	if n.Name != "" {
		drawInnerLabel(p, n.Name, myX, myY, ds)
	}

	for _, kid := range n.Kids {
		drawNode(p, kid.Node, myX, yOff+kid.YOffset*ds.yScale, false, ds)
	}
}

// drawInnerLabel places an internal-node name above-left of the node for
// horizontal trees, or rotated a quarter turn below-left for vertical trees
// so it reads horizontally after the final rotation.
func drawInnerLabel(p *Program, name string, myX, myY float64, ds *drawState) {
	st := ds.style
	ext := ds.metrics.Measure(name, st.InnerSize, text.Style{Italic: st.InnerItalic})

	label := Label{
		Text:   name,
		Size:   st.InnerSize,
		Color:  st.InnerColor,
		Italic: st.InnerItalic,
	}

	if st.IsVertical() {
		label.Pos = Point{X: myX - LabelGap, Y: myY + LabelGap}
		label.Rotation = 90
	} else {
		label.Pos = Point{X: myX - ext.W - LabelGap, Y: myY - ext.H - LabelGap/2}
	}

	p.AddLabel(label)
}
