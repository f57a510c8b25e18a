package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/pipeline"
	"github.com/apcamargo/phylodraw/pkg/text"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path (or base path for multiple formats)
	fontPath  string // TTF file for exact text measurement
	noCache   bool   // disable the pipeline cache
	redisAddr string // Redis cache backend (host:port)
	pipeline.Options
}

// renderCommand creates the render command for generating tree figures.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a tree document to SVG or JSON",
		Long: `Render reads a JSON tree document and writes the laid-out figure.

The input is a nested node document ({"name", "length", "children"}, with an
optional "rooted" flag on the root). Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			applyConfigDefaults(cmd, &opts.Options)
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.Width, "width", "", "figure width: units, percentage, or \"auto\"")
	cmd.Flags().StringVar(&opts.Height, "height", "", "figure height: units, percentage, or \"auto\"")
	cmd.Flags().StringVar(&opts.Orientation, "orientation", "", "tree orientation: horizontal (default), vertical")
	cmd.Flags().BoolVar(&opts.Cladogram, "cladogram", false, "ignore branch lengths and draw unit branches")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", 0, "branch stroke width")
	cmd.Flags().StringVar(&opts.StrokeColor, "stroke-color", "", "branch stroke color")
	cmd.Flags().Float64Var(&opts.TipSize, "tip-size", 0, "tip label font size")
	cmd.Flags().StringVar(&opts.TipColor, "tip-color", "", "tip label color")
	cmd.Flags().BoolVar(&opts.NoItalicTips, "no-italic-tips", false, "disable italic tip labels")
	cmd.Flags().Float64Var(&opts.InnerSize, "inner-size", 0, "internal node label font size")
	cmd.Flags().StringVar(&opts.InnerColor, "inner-color", "", "internal node label color")
	cmd.Flags().Float64Var(&opts.RootLength, "root-length", 0, "length of the dotted root stub")
	cmd.Flags().BoolVar(&opts.ScaleBar, "scale-bar", false, "draw a branch-length scale bar")
	cmd.Flags().Float64Var(&opts.ScaleBarLength, "scale-bar-length", 0, "scale bar span in branch-length units (0 = automatic)")
	cmd.Flags().StringVar(&opts.ScaleBarUnit, "scale-bar-unit", "", "unit suffix on the scale bar label")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "TTF file for exact label measurement (default: heuristic metrics)")
	cmd.Flags().StringVar(&opts.FontFamily, "font-family", "", "font family for SVG output")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color for SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "use a Redis cache backend (host:port)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender executes the pipeline for the input file and writes the requested
// artifacts.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	input = filepath.Clean(input)

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if opts.fontPath != "" {
		metrics, err := text.LoadFont(opts.fontPath)
		if err != nil {
			return err
		}
		opts.Metrics = metrics
		opts.MetricsName = filepath.Base(opts.fontPath)
	}

	runner, err := c.newRunner(cmd, opts.noCache, opts.redisAddr)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(cmd.Context(), "Computing layout")
	spin.Start()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), data, opts.Options)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	printSuccess("Rendered %s", input)
	printStats(result.Stats.TipCount, result.Stats.LineCount, result.Stats.LabelCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	for _, format := range opts.Formats {
		path := outputPath(opts.output, input, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if !opts.ScaleBar && !opts.Cladogram {
		printNextStep("Add a scale bar", fmt.Sprintf("%s render %s --scale-bar", appName, input))
	}
	return nil
}

// outputPath derives the artifact path from the output flag, the input file,
// and the format. With multiple formats the output acts as a base path.
func outputPath(output, input, format string, multi bool) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if input == "-" {
			base = "tree"
		}
		return base + "." + format
	}
	if !multi {
		return output
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}
