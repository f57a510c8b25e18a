// Package export converts trees to Graphviz node-link diagrams. It shows the
// branching topology only; branch lengths and the 2D layout are the domain of
// [layout.Render].
//
// [layout.Render]: github.com/apcamargo/phylodraw/pkg/layout.Render
package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/apcamargo/phylodraw/pkg/tree"
)

// Options configures node-link topology rendering.
type Options struct {
	// Detailed includes branch lengths in node labels. When false, only
	// node names are shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG]. Unnamed
// internal nodes get synthetic identifiers and render as small points; leaves
// render as boxes.
func ToDOT(t *tree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, detailed: opts.Detailed}
	w.node(t.Root, "n0")

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf      *bytes.Buffer
	detailed bool
}

// node emits one node and its subtree. id is a path-derived identifier, kept
// stable across calls so the DOT output is deterministic.
func (w dotWriter) node(n *tree.Node, id string) {
	attrs := []string{fmt.Sprintf("label=%q", w.label(n))}
	if !n.IsLeaf() && n.Name == "" {
		attrs = append(attrs, "shape=point", "width=0.08")
	}
	fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

	for i, c := range n.Children {
		cid := fmt.Sprintf("%s_%d", id, i)
		w.node(c, cid)
		fmt.Fprintf(w.buf, "  %q -> %q%s;\n", id, cid, w.edgeAttrs(c))
	}
}

func (w dotWriter) label(n *tree.Node) string {
	if !w.detailed || n.Length == nil {
		return n.Name
	}
	if n.Name == "" {
		return fmt.Sprintf("%g", *n.Length)
	}
	return fmt.Sprintf("%s\n%g", n.Name, *n.Length)
}

func (w dotWriter) edgeAttrs(c *tree.Node) string {
	if !w.detailed || c.Length == nil {
		return ""
	}
	return fmt.Sprintf(" [label=%q, fontsize=10]", fmt.Sprintf("%g", *c.Length))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
