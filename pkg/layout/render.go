package layout

import (
	"github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/text"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// Config bundles everything one render call needs besides the tree itself.
type Config struct {
	Style    Style
	Width    Length
	Height   Length
	ScaleBar ScaleBar
	Avail    Avail
}

// DefaultConfig returns a render configuration with default style, automatic
// dimensions, no scale bar, and an unbounded ambient layout.
func DefaultConfig() Config {
	return Config{
		Style:    DefaultStyle(),
		Width:    Frac(1.0),
		Height:   Auto(),
		ScaleBar: DefaultScaleBar(),
		Avail:    Unbounded(),
	}
}

// Validate checks the style bundle and option combinations.
func (c *Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return err
	}
	if err := c.ScaleBar.Validate(); err != nil {
		return err
	}
	if c.Style.Cladogram && c.ScaleBar.Show {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cladogram and scale bar are mutually exclusive: a cladogram has no branch-length unit")
	}
	return nil
}

// Render lays out the whole tree: measure → margins → resolve → draw, then
// the quarter-turn for vertical trees and the optional scale bar row.
// The returned program is fresh per call; nothing is cached or shared.
func Render(t *tree.Tree, cfg Config, m text.Metrics) (*Program, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st := &cfg.Style
	measured := Measure(t.Root, st.Cladogram)
	margins := ComputeMargins(m, st, t)

	frame, err := ResolveFrame(cfg.Width, cfg.Height, margins, t.Tips(), st, cfg.Avail)
	if err != nil {
		return nil, err
	}

	ds := &drawState{
		style:        st,
		metrics:      m,
		rooted:       t.Rooted,
		labelYOffset: m.Measure("x", st.TipSize, text.Style{Italic: st.TipItalic}).H / 2,
		xScale:       frame.Depth / max(epsilon, measured.Depth),
		yScale:       frame.Spread / max(epsilon, measured.Height),
	}

	p := &Program{Width: frame.W, Height: frame.H}
	drawNode(p, measured, margins.Root, margins.YStart, true, ds)

	if st.IsVertical() {
		p = p.Rotated()
	}

	// The bar row is appended after the quarter-turn so the bar and its value
	// label read horizontally in either orientation.
	if cfg.ScaleBar.Show {
		barX, barWidth := margins.Root, frame.Depth
		if st.IsVertical() {
			barX, barWidth = 0, p.Width
		}
		if err := appendScaleBar(p, &cfg.ScaleBar, m, measured.Depth, ds.xScale, barX, barWidth); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// appendScaleBar reserves a row under the tree and draws the resolved bar
// into it, growing the program's bounding box.
func appendScaleBar(p *Program, sb *ScaleBar, m text.Metrics, maxDepth, xScale, x, maxWidth float64) error {
	rs, err := ResolveScale(sb.Length, maxDepth, xScale, maxWidth)
	if err != nil {
		return err
	}

	barY := p.Height + sb.Gap + sb.TickSize/2
	DrawScaleBar(p, rs, sb, m, x, barY, p.Width)

	labelH := m.Measure(FormatScaleValue(rs.Length, sb.Unit), sb.LabelSize, text.Style{}).H
	p.Height = barY + sb.TickSize/2 + LabelGap/2 + labelH

	return nil
}
