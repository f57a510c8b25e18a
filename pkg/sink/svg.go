package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/apcamargo/phylodraw/pkg/layout"
)

// dashPattern is the stroke-dasharray applied to dashed segments such as the
// root stub.
const dashPattern = "4 3"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	background string
}

// WithFontFamily sets the font-family attribute on all text elements.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithBackground adds a full-canvas background rectangle in the given color.
// Without it the canvas is transparent.
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// RenderSVG serializes the drawing program into a standalone SVG document.
// Instructions are emitted in program order, lines before labels, so visual
// stacking matches the drawing order.
func RenderSVG(p *layout.Program, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: "Helvetica, Arial, sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		p.Width, p.Height, p.Width, p.Height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	for _, l := range p.Lines {
		renderLine(&buf, l)
	}
	for _, l := range p.Labels {
		renderLabel(&buf, l, r.fontFamily)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLine(buf *bytes.Buffer, l layout.Line) {
	fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke=%q stroke-width="%.2f"`,
		l.From.X, l.From.Y, l.To.X, l.To.Y, l.Color, l.Width)
	if l.Dashed {
		fmt.Fprintf(buf, ` stroke-dasharray=%q`, dashPattern)
	}
	buf.WriteString("/>\n")
}

func renderLabel(buf *bytes.Buffer, l layout.Label, fontFamily string) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="%.2f" font-family=%q fill=%q dominant-baseline="hanging"`,
		l.Pos.X, l.Pos.Y, l.Size, fontFamily, l.Color)
	if l.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	if l.Rotation != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.1f %.2f %.2f)"`, l.Rotation, l.Pos.X, l.Pos.Y)
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeText(l.Text))
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeText(s string) string { return textEscaper.Replace(s) }
