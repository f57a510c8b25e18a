package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/export"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// topologyCommand creates the topology export command. It renders the raw
// branching structure as a Graphviz node-link diagram, independent of the
// layout pipeline.
func (c *CLI) topologyCommand() *cobra.Command {
	var output string
	var format string
	var detailed bool

	cmd := &cobra.Command{
		Use:   "topology [file]",
		Short: "Export the branching structure as a Graphviz diagram",
		Long: `Topology converts a tree document into a node-link diagram, either as
Graphviz DOT source or rendered to SVG. Branch lengths are ignored; the
diagram shows parent-child structure only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTopology(cmd, args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input name with new extension)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node names and branch lengths as labels")

	return cmd
}

func (c *CLI) runTopology(cmd *cobra.Command, input, output, format string, detailed bool) error {
	if format != "dot" && format != "svg" {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported topology format %q (want dot or svg)", format)
	}

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	t, err := tree.Decode(data)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	dot := export.ToDOT(t, export.Options{Detailed: detailed})

	var out []byte
	switch format {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = export.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return fmt.Errorf("render topology: %w", err)
		}
	}
	prog.done("Exported topology")

	path := output
	if path == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		if input == "-" {
			base = "tree"
		}
		path = base + "." + format
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Exported topology of %s", input)
	printStats(t.Tips(), 0, 0, false)
	printFile(path)
	return nil
}
