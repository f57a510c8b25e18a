// Package text abstracts text measurement for the layout engine.
//
// The engine never draws glyphs; it only needs the rendered extent of a label
// at a given size and style to reserve space for it. Implementations must be
// pure: the same input always yields the same extent, which keeps layout
// deterministic and testable without a font host.
package text

// Style selects the typographic variant of a label.
type Style struct {
	Italic bool
}

// Extent is the rendered size of a string.
type Extent struct {
	W float64
	H float64
}

// Metrics measures rendered text. Implementations must be deterministic for
// a given font context.
type Metrics interface {
	Measure(text string, size float64, style Style) Extent
}
