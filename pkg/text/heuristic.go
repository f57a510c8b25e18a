package text

import "unicode/utf8"

// Ratio constants for the fallback measurer. Tuned against common sans-serif
// faces; labels come out slightly generous rather than clipped.
const (
	charWidthRatio  = 0.55
	lineHeightRatio = 0.72
	italicStretch   = 1.04
)

// Heuristic estimates text extents from character counts and fixed ratios.
// It needs no font files, which makes it the default measurer for CLI and
// test use.
type Heuristic struct{}

// NewHeuristic creates a ratio-based measurer.
func NewHeuristic() Heuristic { return Heuristic{} }

// Measure returns the estimated extent of text at the given size.
func (Heuristic) Measure(text string, size float64, style Style) Extent {
	n := utf8.RuneCountInString(text)
	w := float64(n) * size * charWidthRatio
	if style.Italic {
		w *= italicStretch
	}
	return Extent{W: w, H: size * lineHeightRatio}
}

var _ Metrics = Heuristic{}
