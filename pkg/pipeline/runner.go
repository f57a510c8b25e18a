package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/apcamargo/phylodraw/pkg/cache"
	"github.com/apcamargo/phylodraw/pkg/layout"
	"github.com/apcamargo/phylodraw/pkg/observability"
	"github.com/apcamargo/phylodraw/pkg/sink"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
		TreeHash:  r.Keyer.TreeKey(input),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, len(input))
	t, err := tree.Decode(input)
	observability.Pipeline().OnDecodeComplete(ctx, tipsOrZero(t), time.Since(decodeStart), err)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.TipCount = t.Tips()

	r.Logger.Info("decoded tree",
		"tips", result.Stats.TipCount,
		"rooted", t.Rooted,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, result.Stats.TipCount)
	p, layoutHit, err := r.LayoutWithCacheInfo(ctx, t, result.TreeHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, linesOrZero(p), time.Since(layoutStart), err)
	if err != nil {
		return nil, err
	}
	result.Program = p
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LineCount = len(p.Lines)
	result.Stats.LabelCount = len(p.Labels)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"lines", result.Stats.LineCount,
		"labels", result.Stats.LabelCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the drawing program with caching and returns
// cache hit info. treeHash keys the cache entry; pass the Keyer's TreeKey of
// the raw input.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, t *tree.Tree, treeHash string, opts Options) (*layout.Program, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Program
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// Corrupt entry, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	cfg, err := opts.LayoutConfig()
	if err != nil {
		return nil, false, err
	}
	p, err := layout.Render(t, cfg, opts.Metrics)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(p); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return p, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, t *tree.Tree, treeHash string, opts Options) (*layout.Program, error) {
	p, _, err := r.LayoutWithCacheInfo(ctx, t, treeHash, opts)
	return p, err
}

// RenderWithCacheInfo serializes artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *layout.Program, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	programData, err := json.Marshal(p)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(programData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderFormats(p, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p *layout.Program, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, opts)
	return artifacts, err
}

// renderFormats serializes the program into every requested format.
func renderFormats(p *layout.Program, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if opts.FontFamily != "" {
				svgOpts = append(svgOpts, sink.WithFontFamily(opts.FontFamily))
			}
			if opts.Background != "" {
				svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
			}
			out[format] = sink.RenderSVG(p, svgOpts...)
		case FormatJSON:
			data, err := sink.RenderJSON(p)
			if err != nil {
				return nil, err
			}
			out[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func tipsOrZero(t *tree.Tree) int {
	if t == nil {
		return 0
	}
	return t.Tips()
}

func linesOrZero(p *layout.Program) int {
	if p == nil {
		return 0
	}
	return len(p.Lines)
}
