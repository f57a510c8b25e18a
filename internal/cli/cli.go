// Package cli implements the phylodraw command-line interface.
//
// This package provides commands for rendering phylogenetic tree documents as
// 2D visualizations, exporting their topology as node-link diagrams, browsing
// trees interactively, and serving the render pipeline over HTTP. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - render: Compute a tree layout and write SVG or JSON output
//   - topology: Export the branching structure as a Graphviz diagram
//   - inspect: Browse a tree document interactively
//   - serve: Run the render pipeline as an HTTP service
//   - cache: Manage the layout and artifact cache
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/buildinfo"
	"github.com/apcamargo/phylodraw/pkg/cache"
	"github.com/apcamargo/phylodraw/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "phylodraw"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Phylodraw renders phylogenetic trees as 2D visualizations",
		Long:         `Phylodraw is a CLI tool for turning JSON tree documents into publication-ready phylogram and cladogram figures, with automatic sizing, scale bars, and vertical or horizontal orientation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.topologyCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. redisAddr selects the
// Redis backend; otherwise a file cache under the XDG cache dir is used.
func (c *CLI) newRunner(cmd *cobra.Command, noCache bool, redisAddr string) (*pipeline.Runner, error) {
	store, err := c.newCache(cmd, noCache, redisAddr)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(cmd *cobra.Command, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(cmd.Context(), redisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/phylodraw/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// readInput reads the tree document from a file path, or from stdin when the
// path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
