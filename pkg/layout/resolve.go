package layout

import (
	"math"

	"github.com/apcamargo/phylodraw/pkg/errors"
)

// Length kinds for requested dimensions.
const (
	UnitAbs  = "abs"  // absolute layout units
	UnitFrac = "frac" // fraction of the ambient available space
	UnitAuto = "auto" // derived from the tree (height) or the full width
)

// Length is a requested dimension: absolute, proportional, or automatic.
type Length struct {
	Kind  string
	Value float64
}

// Abs returns an absolute length.
func Abs(v float64) Length { return Length{Kind: UnitAbs, Value: v} }

// Frac returns a length proportional to the ambient available space.
// The value is a fraction in (0, 1].
func Frac(v float64) Length { return Length{Kind: UnitFrac, Value: v} }

// Auto returns an automatic length.
func Auto() Length { return Length{Kind: UnitAuto} }

const (
	// DefaultWidth is the fallback when a proportional width meets an
	// unbounded ambient layout.
	DefaultWidth = 600.0

	// autoRowFactor sizes each tip row when the height is automatic, in
	// multiples of the tip label size.
	autoRowFactor = 1.25
)

// Avail is the ambient space offered by the surrounding layout. Either
// dimension may be math.Inf(1) for unbounded contexts.
type Avail struct {
	W float64
	H float64
}

// Unbounded returns an ambient size with no limits.
func Unbounded() Avail { return Avail{W: math.Inf(1), H: math.Inf(1)} }

// Frame is the resolved drawing geometry, in the pre-rotation coordinate
// system. For vertical trees W and H are already swapped relative to the
// requested dimensions; the final quarter-turn swaps them back.
type Frame struct {
	W      float64 // pre-rotation drawing width
	H      float64 // pre-rotation drawing height
	Depth  float64 // drawable extent along the depth (branch length) axis
	Spread float64 // drawable extent along the spread (tip) axis
}

// ResolveFrame converts the requested dimensions plus margins into absolute
// drawable extents, enforcing the orientation-dependent axis swap.
//
// It fails with a LAYOUT_INFEASIBLE error when a resolved dimension cannot
// cover its margins; the message states required versus available extents
// and suggests remedies.
func ResolveFrame(width, height Length, mg Margins, tips int, st *Style, avail Avail) (Frame, error) {
	w := resolveWidth(width, avail.W)
	h := resolveHeight(height, tips, st, avail.H)

	f := Frame{W: w, H: h}
	if st.IsVertical() {
		// The drawing is authored horizontally and rotated a quarter turn,
		// so the pre-rotation axes trade places.
		f.W, f.H = h, w
	}

	f.Depth = f.W - mg.Root - mg.Tip
	f.Spread = f.H - mg.YStart

	depthDim, spreadDim := "width", "height"
	if st.IsVertical() {
		depthDim, spreadDim = "height", "width"
	}

	if f.Depth <= 0 {
		return Frame{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"%s %.1f cannot fit the %.1f units reserved for margins (root %.1f + tip labels %.1f, short by %.1f); increase the %s, reduce the label size, or reduce the root length",
			depthDim, f.W, mg.Root+mg.Tip, mg.Root, mg.Tip, mg.Root+mg.Tip-f.W, depthDim)
	}
	if f.Spread <= 0 {
		return Frame{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"%s %.1f cannot fit the %.1f units reserved for the label offset (short by %.1f); increase the %s or reduce the label size",
			spreadDim, f.H, mg.YStart, mg.YStart-f.H, spreadDim)
	}

	return f, nil
}

// resolveWidth resolves the requested width against the ambient width.
// Proportional requests against an unbounded ambient fall back to a fixed
// default; automatic widths take the full ambient space.
func resolveWidth(l Length, availW float64) float64 {
	switch l.Kind {
	case UnitAbs:
		return l.Value
	case UnitFrac:
		if math.IsInf(availW, 1) {
			return DefaultWidth
		}
		return l.Value * availW
	default:
		if math.IsInf(availW, 1) {
			return DefaultWidth
		}
		return availW
	}
}

// resolveHeight resolves the requested height. Automatic heights allocate a
// consistent row per tip so the spacing does not depend on the measured font
// extents.
func resolveHeight(l Length, tips int, st *Style, availH float64) float64 {
	switch l.Kind {
	case UnitAbs:
		return l.Value
	case UnitFrac:
		if math.IsInf(availH, 1) {
			return float64(tips) * autoRowFactor * st.TipSize
		}
		return l.Value * availH
	default:
		return float64(tips) * autoRowFactor * st.TipSize
	}
}
