// Package pkg provides the core libraries for phylodraw tree visualization.
//
// # Overview
//
// Phylodraw turns phylogenetic tree documents into 2D figures. The pkg
// directory is organized into three main areas:
//
//  1. Domain logic: tree decoding, text measurement, and the layout engine
//     ([tree], [text], [layout])
//  2. Output: serialization of drawing programs and topology exports
//     ([sink], [export])
//  3. Orchestration and infrastructure: the cached pipeline and its
//     supporting packages ([pipeline], [cache], [errors], [observability],
//     [buildinfo])
//
// # Architecture
//
// The typical data flow through phylodraw:
//
//	JSON tree document
//	         ↓
//	tree.Decode           (validate structure)
//	         ↓
//	layout.Render         (measure labels, resolve frame, draw)
//	         ↓
//	sink.RenderSVG / RenderJSON
//	         ↓
//	SVG or JSON artifact
//
// The [pipeline] package wires these stages together with content-addressed
// caching, so the CLI and the HTTP server share one implementation.
package pkg
