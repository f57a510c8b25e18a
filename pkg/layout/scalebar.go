package layout

import (
	"fmt"
	"math"

	"github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/text"
)

// niceSteps are the mantissas of human-readable scale values; a nice number
// is one of these times a power of ten.
var niceSteps = []float64{1, 2.5, 5, 7.5, 10}

// fitTolerance is the slack, in branch-length units, allowed when checking
// an explicit scale length against the available width.
const fitTolerance = 0.01

// ResolvedScale is a selected scale-bar span and its on-canvas width.
type ResolvedScale struct {
	Length float64 // branch-length units
	Width  float64 // layout units (Length × xScale)
}

// ResolveScale picks the scale-bar length. A positive requested length is
// used as-is but must fit the available width; zero requests automatic
// selection: one tenth of the tree depth rounded up to the next nice number,
// or the largest nice number that fits when that overflows.
func ResolveScale(requested, maxDepth, xScale, maxWidth float64) (ResolvedScale, error) {
	if maxDepth <= 0 {
		return ResolvedScale{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"scale bar needs a tree with positive depth")
	}
	if maxWidth <= 0 {
		return ResolvedScale{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"scale bar has no horizontal space available (%.1f units)", maxWidth)
	}

	maxLen := maxWidth / xScale

	if requested > 0 {
		if requested > maxLen+fitTolerance {
			return ResolvedScale{}, errors.New(errors.ErrCodeLayoutInfeasible,
				"scale bar length %v exceeds the available width (at most %.2f length units fit); shorten the bar or widen the tree", requested, maxLen)
		}
		return ResolvedScale{Length: requested, Width: requested * xScale}, nil
	}

	length := roundScale(maxDepth / 10)
	if length > maxLen {
		length = floorScale(maxLen)
	}
	if length <= 0 {
		return ResolvedScale{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"no positive scale bar length fits the available width")
	}

	return ResolvedScale{Length: length, Width: length * xScale}, nil
}

// roundScale rounds target up to the closest nice number ≥ target.
func roundScale(target float64) float64 {
	if target <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(target))
	pow := math.Pow(10, exp)
	scaled := target / pow
	for _, step := range niceSteps {
		if scaled <= step+epsilon {
			return step * pow
		}
	}
	return 10 * pow
}

// floorScale rounds target down to the largest nice number ≤ target.
func floorScale(target float64) float64 {
	if target <= 0 {
		return 0
	}
	exp := math.Floor(math.Log10(target))
	pow := math.Pow(10, exp)
	scaled := target / pow
	for i := len(niceSteps) - 1; i >= 0; i-- {
		if scaled >= niceSteps[i]-epsilon {
			return niceSteps[i] * pow
		}
	}
	return pow
}

// DrawScaleBar emits the bar segment, its two end ticks, and the value label
// centered under the bar and clamped to the row width. The bar starts at
// (x, y) with y on the bar's axis; rowWidth is the full width available for
// the label clamp.
func DrawScaleBar(p *Program, rs ResolvedScale, sb *ScaleBar, m text.Metrics, x, y, rowWidth float64) {
	stroke := Line{Width: 1.0, Color: sb.Color}

	bar := stroke
	bar.From = Point{X: x, Y: y}
	bar.To = Point{X: x + rs.Width, Y: y}
	p.AddLine(bar)

	for _, tx := range []float64{x, x + rs.Width} {
		tick := stroke
		tick.From = Point{X: tx, Y: y - sb.TickSize/2}
		tick.To = Point{X: tx, Y: y + sb.TickSize/2}
		p.AddLine(tick)
	}

	txt := FormatScaleValue(rs.Length, sb.Unit)
	ext := m.Measure(txt, sb.LabelSize, text.Style{})
	lx := x + rs.Width/2 - ext.W/2
	if lx+ext.W > rowWidth {
		lx = rowWidth - ext.W
	}
	if lx < 0 {
		lx = 0
	}
	p.AddLabel(Label{
		Text:  txt,
		Pos:   Point{X: lx, Y: y + sb.TickSize/2 + LabelGap/2},
		Size:  sb.LabelSize,
		Color: sb.Color,
	})
}

// FormatScaleValue renders a branch-length value with two decimal digits,
// collapsing to an integer display when within 1e-6 of one, and appends the
// optional unit suffix.
func FormatScaleValue(v float64, unit string) string {
	var s string
	if r := math.Round(v); math.Abs(v-r) < 1e-6 {
		s = fmt.Sprintf("%d", int64(r))
	} else {
		s = fmt.Sprintf("%.2f", v)
	}
	if unit != "" {
		s += " " + unit
	}
	return s
}
