package layout

import "github.com/apcamargo/phylodraw/pkg/errors"

// Tree orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
)

// Style is the immutable per-render configuration bundle. It is shared
// read-only across the whole drawing pass; derived values (label baseline
// offset, scale factors) live in the draw state, not here.
type Style struct {
	StrokeWidth float64 // branch stroke weight
	StrokeColor string  // branch stroke color
	TipSize     float64 // tip label font size
	TipColor    string
	TipItalic   bool // species names are conventionally italic
	InnerSize   float64 // internal-node label font size
	InnerColor  string
	InnerItalic bool
	RootLength  float64 // stub branch length for rooted trees
	Orientation string  // "horizontal" or "vertical"
	Cladogram   bool    // flatten all branch lengths to one unit
}

// DefaultStyle returns the style applied when no options are given.
func DefaultStyle() Style {
	return Style{
		StrokeWidth: 1.0,
		StrokeColor: "black",
		TipSize:     10.0,
		TipColor:    "black",
		TipItalic:   true,
		InnerSize:   8.0,
		InnerColor:  "gray",
		RootLength:  10.0,
		Orientation: OrientationHorizontal,
	}
}

// IsVertical reports whether the tree is drawn top-to-bottom.
func (s *Style) IsVertical() bool { return s.Orientation == OrientationVertical }

// Validate checks option values. It returns an INVALID_CONFIG error stating
// the violated constraint.
func (s *Style) Validate() error {
	if s.StrokeWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke width must be positive, got %v", s.StrokeWidth)
	}
	if s.TipSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tip label size must be positive, got %v", s.TipSize)
	}
	if s.InnerSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "internal label size must be positive, got %v", s.InnerSize)
	}
	if s.RootLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "root branch length must not be negative, got %v", s.RootLength)
	}
	if s.Orientation != OrientationHorizontal && s.Orientation != OrientationVertical {
		return errors.New(errors.ErrCodeInvalidConfig, "orientation must be %q or %q, got %q",
			OrientationHorizontal, OrientationVertical, s.Orientation)
	}
	return nil
}

// ScaleBar configures the branch-length reference bar drawn under the tree.
type ScaleBar struct {
	Show      bool
	Length    float64 // branch-length units; 0 selects a nice value automatically
	Unit      string  // optional suffix on the value label
	Gap       float64 // vertical gap between tree and bar row
	TickSize  float64 // height of the end ticks
	LabelSize float64 // font size of the value label
	Color     string
}

// DefaultScaleBar returns the scale bar settings applied when enabled
// without further options.
func DefaultScaleBar() ScaleBar {
	return ScaleBar{
		Gap:       8.0,
		TickSize:  6.0,
		LabelSize: 8.0,
		Color:     "black",
	}
}

// Validate checks scale bar option values.
func (sb *ScaleBar) Validate() error {
	if !sb.Show {
		return nil
	}
	if sb.Length < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale bar length must not be negative, got %v", sb.Length)
	}
	if sb.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale bar gap must not be negative, got %v", sb.Gap)
	}
	if sb.TickSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale bar tick size must be positive, got %v", sb.TickSize)
	}
	if sb.LabelSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale bar label size must be positive, got %v", sb.LabelSize)
	}
	return nil
}
