package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/pipeline"
)

// Config is the on-disk configuration, loaded from the XDG config dir
// (~/.config/phylodraw/config.toml). All fields are optional; command-line
// flags take precedence.
type Config struct {
	Render RenderConfig `toml:"render"`
}

// RenderConfig holds default values for the render command.
type RenderConfig struct {
	Width        string  `toml:"width"`
	Height       string  `toml:"height"`
	Orientation  string  `toml:"orientation"`
	TipSize      float64 `toml:"tip_size"`
	InnerSize    float64 `toml:"inner_size"`
	FontFamily   string  `toml:"font_family"`
	Background   string  `toml:"background"`
	ScaleBarUnit string  `toml:"scale_bar_unit"`
}

// configPath returns the config file path using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file. A missing file yields a zero config;
// parse errors are reported so a typo does not silently drop settings.
func loadConfig() (Config, error) {
	var cfg Config

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfigDefaults fills unset flag values from the config file. Flags the
// user passed explicitly always win.
func applyConfigDefaults(cmd *cobra.Command, opts *pipeline.Options) {
	cfg, err := loadConfig()
	if err != nil {
		printDetail("%v", err)
		return
	}
	r := cfg.Render

	if !cmd.Flags().Changed("width") && r.Width != "" {
		opts.Width = r.Width
	}
	if !cmd.Flags().Changed("height") && r.Height != "" {
		opts.Height = r.Height
	}
	if !cmd.Flags().Changed("orientation") && r.Orientation != "" {
		opts.Orientation = r.Orientation
	}
	if !cmd.Flags().Changed("tip-size") && r.TipSize != 0 {
		opts.TipSize = r.TipSize
	}
	if !cmd.Flags().Changed("inner-size") && r.InnerSize != 0 {
		opts.InnerSize = r.InnerSize
	}
	if !cmd.Flags().Changed("font-family") && r.FontFamily != "" {
		opts.FontFamily = r.FontFamily
	}
	if !cmd.Flags().Changed("background") && r.Background != "" {
		opts.Background = r.Background
	}
	if !cmd.Flags().Changed("scale-bar-unit") && r.ScaleBarUnit != "" {
		opts.ScaleBarUnit = r.ScaleBarUnit
	}
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return fmt.Errorf("get config path: %w", err)
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return toml.NewEncoder(os.Stdout).Encode(cfg)
		},
	})

	return cmd
}
