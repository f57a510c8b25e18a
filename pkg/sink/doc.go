// Package sink provides output format renderers for tree drawing programs.
//
// # Overview
//
// A "sink" transforms a computed [layout.Program] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics
//   - JSON: Drawing program export for external renderers
//
// # SVG Output
//
// [RenderSVG] serializes every line and label instruction of the program into
// a standalone SVG document:
//
//	svg := sink.RenderSVG(program,
//	    sink.WithFontFamily("Georgia"),
//	    sink.WithBackground("white"),
//	)
//
// Label anchors use hanging baselines so the program's top-left text anchors
// translate directly; rotations become SVG rotate transforms around the
// anchor point.
//
// # JSON Output
//
// [RenderJSON] exports the drawing program as JSON so external tools can
// rasterize or embed it. The document carries the bounding box, every
// instruction in program order, and the generator version for provenance.
//
// [layout.Program]: github.com/apcamargo/phylodraw/pkg/layout.Program
package sink
