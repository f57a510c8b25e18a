package sink

import (
	"encoding/json"

	"github.com/apcamargo/phylodraw/pkg/buildinfo"
	"github.com/apcamargo/phylodraw/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact  bool
	noExtras bool
}

// WithJSONCompact emits the document without indentation, for piping into
// other tools.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONBare omits the generator block, leaving only the drawing program
// itself. Useful when the output is diffed or content-hashed.
func WithJSONBare() JSONOption { return func(r *jsonRenderer) { r.noExtras = true } }

type jsonOutput struct {
	Generator *jsonGenerator `json:"generator,omitempty"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Lines     []layout.Line  `json:"lines"`
	Labels    []layout.Label `json:"labels"`
}

type jsonGenerator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RenderJSON exports the drawing program as a JSON document. Instruction
// order is preserved, so re-rendering from the export reproduces the exact
// visual. It returns an error only if marshaling fails and is safe to call
// concurrently.
func RenderJSON(p *layout.Program, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  p.Width,
		Height: p.Height,
		Lines:  p.Lines,
		Labels: p.Labels,
	}
	if !r.noExtras {
		out.Generator = &jsonGenerator{Name: "phylodraw", Version: buildinfo.Version}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
