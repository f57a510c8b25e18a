// Package pipeline provides the core rendering pipeline for phylodraw.
//
// This package implements the complete decode → layout → render pipeline
// shared by the CLI and the HTTP server. Centralizing it keeps behavior
// consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Validate the JSON tree document
//  2. Layout: Compute the 2D drawing program
//  3. Render: Serialize the program into output formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/apcamargo/phylodraw/pkg/cache"
	"github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/layout"
	"github.com/apcamargo/phylodraw/pkg/text"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Width and Height accept an absolute number ("600"),
	// a percentage of the ambient space ("80%"), or "auto".
	Width        string  `json:"width,omitempty"`
	Height       string  `json:"height,omitempty"`
	Orientation  string  `json:"orientation,omitempty"`
	Cladogram    bool    `json:"cladogram,omitempty"`
	StrokeWidth  float64 `json:"stroke_width,omitempty"`
	StrokeColor  string  `json:"stroke_color,omitempty"`
	TipSize      float64 `json:"tip_size,omitempty"`
	TipColor     string  `json:"tip_color,omitempty"`
	NoItalicTips bool    `json:"no_italic_tips,omitempty"`
	InnerSize    float64 `json:"inner_size,omitempty"`
	InnerColor   string  `json:"inner_color,omitempty"`
	RootLength   float64 `json:"root_length,omitempty"`

	// Scale bar options.
	ScaleBar       bool    `json:"scale_bar,omitempty"`
	ScaleBarLength float64 `json:"scale_bar_length,omitempty"`
	ScaleBarUnit   string  `json:"scale_bar_unit,omitempty"`

	// Ambient space the proportional dimensions resolve against; zero
	// means unbounded.
	AvailWidth  float64 `json:"avail_width,omitempty"`
	AvailHeight float64 `json:"avail_height,omitempty"`

	// MetricsName identifies a non-default text measurer so its layouts do
	// not collide with heuristic ones in the cache.
	MetricsName string `json:"metrics_name,omitempty"`

	// Render options.
	Formats    []string `json:"formats,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	Background string   `json:"background,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger  `json:"-"`
	Metrics text.Metrics `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the decoded tree document.
	Tree *tree.Tree

	// TreeHash is the content hash of the raw input.
	TreeHash string

	// Program is the computed drawing program.
	Program *layout.Program

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TipCount   int
	LineCount  int
	LabelCount int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the drawing program came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseLength parses a dimension string: "auto", a percentage like "80%", or
// an absolute number of layout units like "600".
func ParseLength(s string) (layout.Length, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "auto":
		return layout.Auto(), nil
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || pct <= 0 {
			return layout.Length{}, errors.New(errors.ErrCodeInvalidConfig,
				"invalid percentage dimension %q", s)
		}
		return layout.Frac(pct / 100), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return layout.Length{}, errors.New(errors.ErrCodeInvalidConfig,
				"invalid dimension %q (use a number, a percentage, or \"auto\")", s)
		}
		return layout.Abs(v), nil
	}
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates the dimension strings and fills runtime
// defaults for layout computation. Style values are validated by the layout
// engine itself.
func (o *Options) ValidateForLayout() error {
	if _, err := ParseLength(o.widthOrDefault()); err != nil {
		return err
	}
	if _, err := ParseLength(o.Height); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Metrics == nil {
		o.Metrics = text.NewHeuristic()
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// widthOrDefault maps an empty width to the full ambient width.
func (o *Options) widthOrDefault() string {
	if o.Width == "" {
		return "100%"
	}
	return o.Width
}

// LayoutConfig translates the options into a layout configuration.
func (o *Options) LayoutConfig() (layout.Config, error) {
	cfg := layout.DefaultConfig()

	w, err := ParseLength(o.widthOrDefault())
	if err != nil {
		return cfg, err
	}
	h, err := ParseLength(o.Height)
	if err != nil {
		return cfg, err
	}
	cfg.Width = w
	cfg.Height = h

	av := layout.Unbounded()
	if o.AvailWidth > 0 {
		av.W = o.AvailWidth
	}
	if o.AvailHeight > 0 {
		av.H = o.AvailHeight
	}
	cfg.Avail = av

	st := &cfg.Style
	if o.Orientation != "" {
		st.Orientation = o.Orientation
	}
	st.Cladogram = o.Cladogram
	if o.StrokeWidth != 0 {
		st.StrokeWidth = o.StrokeWidth
	}
	if o.StrokeColor != "" {
		st.StrokeColor = o.StrokeColor
	}
	if o.TipSize != 0 {
		st.TipSize = o.TipSize
	}
	if o.TipColor != "" {
		st.TipColor = o.TipColor
	}
	st.TipItalic = !o.NoItalicTips
	if o.InnerSize != 0 {
		st.InnerSize = o.InnerSize
	}
	if o.InnerColor != "" {
		st.InnerColor = o.InnerColor
	}
	if o.RootLength != 0 {
		st.RootLength = o.RootLength
	}

	cfg.ScaleBar.Show = o.ScaleBar
	cfg.ScaleBar.Length = o.ScaleBarLength
	cfg.ScaleBar.Unit = o.ScaleBarUnit

	return cfg, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Style: fmt.Sprintf("%s|%v|%v|%s|%v|%s|%v|%v|%s|%v|%s",
			o.Orientation, o.Cladogram, o.StrokeWidth, o.StrokeColor,
			o.TipSize, o.TipColor, o.NoItalicTips, o.InnerSize, o.InnerColor, o.RootLength,
			o.MetricsName),
		Width:    o.widthOrDefault(),
		Height:   o.Height,
		Avail:    fmt.Sprintf("%v|%v", o.AvailWidth, o.AvailHeight),
		ScaleBar: fmt.Sprintf("%v|%v|%s", o.ScaleBar, o.ScaleBarLength, o.ScaleBarUnit),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		FontFamily: o.FontFamily,
		Background: o.Background,
	}
}
