package layout

import (
	"math"

	"github.com/apcamargo/phylodraw/pkg/text"
)

// DrawAxis emits a generalized coordinate axis: a baseline from (x, y)
// spanning width layout units, ticks at every nice-step interval across the
// numeric range [min, max], and a value label under each tick. A zero-length
// range draws a single centered tick labeled with the range value.
func DrawAxis(p *Program, sb *ScaleBar, m text.Metrics, x, y, width, min, max float64) {
	stroke := Line{Width: 1.0, Color: sb.Color}

	base := stroke
	base.From = Point{X: x, Y: y}
	base.To = Point{X: x + width, Y: y}
	p.AddLine(base)

	span := max - min
	if span <= epsilon {
		drawAxisTick(p, sb, m, x+width/2, y, min)
		return
	}

	step := roundScale(span / 10)
	start := math.Ceil(min/step) * step
	for v := start; v <= max+epsilon; v += step {
		tx := x + (v-min)/span*width
		drawAxisTick(p, sb, m, tx, y, v)
	}
}

// drawAxisTick draws one tick and its centered value label.
func drawAxisTick(p *Program, sb *ScaleBar, m text.Metrics, tx, y, v float64) {
	p.AddLine(Line{
		From:  Point{X: tx, Y: y - sb.TickSize/2},
		To:    Point{X: tx, Y: y + sb.TickSize/2},
		Width: 1.0,
		Color: sb.Color,
	})

	txt := FormatScaleValue(v, sb.Unit)
	ext := m.Measure(txt, sb.LabelSize, text.Style{})
	p.AddLabel(Label{
		Text:  txt,
		Pos:   Point{X: tx - ext.W/2, Y: y + sb.TickSize/2 + LabelGap/2},
		Size:  sb.LabelSize,
		Color: sb.Color,
	})
}
