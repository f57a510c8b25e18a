package text

import (
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/math/fixed"

	"github.com/apcamargo/phylodraw/pkg/errors"
)

// TrueType measures text against a parsed TrueType font, giving exact
// advance widths instead of the ratio estimates of [Heuristic].
type TrueType struct {
	font *truetype.Font
}

// ParseFont parses TTF data into a measurer.
func ParseFont(data []byte) (*TrueType, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse TrueType font")
	}
	return &TrueType{font: f}, nil
}

// LoadFont reads and parses a TTF file.
func LoadFont(path string) (*TrueType, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read font file %s", path)
	}
	return ParseFont(data)
}

// Measure sums scaled advance widths (with kerning) for the string and takes
// the face bounding box height. Style is accepted for interface parity; a
// single face carries no italic variant.
func (t *TrueType) Measure(text string, size float64, style Style) Extent {
	scale := fixed.Int26_6(size * 64)

	var width fixed.Int26_6
	prev, hasPrev := truetype.Index(0), false
	for _, r := range text {
		idx := t.font.Index(r)
		if hasPrev {
			width += t.font.Kern(scale, prev, idx)
		}
		width += t.font.HMetric(scale, idx).AdvanceWidth
		prev, hasPrev = idx, true
	}

	bounds := t.font.Bounds(scale)
	height := float64(bounds.Max.Y-bounds.Min.Y) / 64

	return Extent{W: float64(width) / 64, H: height}
}

var _ Metrics = (*TrueType)(nil)
