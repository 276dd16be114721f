// Command prism opens an interactive glass pyramid visualization.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/app"
	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/spf13/cobra"
)

// flags holds the command line values. Zero values mean "keep the config file value".
type flags struct {
	configPath string
	envPath    string
	logLevel   string
	width      int
	height     int
	profile    bool
	watch      bool
	seed       uint64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return newCommand(&flags{})
}

// newCommand builds the root command with its flags bound to f.
func newCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "prism",
		Short:         "Interactive glass pyramid visualization",
		Long:          "prism renders a glass single pyramid or bi-pyramid lit by an off-axis spotlight.\n\nKeys: Up/Down select, Left/Right adjust, Tab next group, 1/2 shape, Space auto-rotate,\nB beam, P dust, R reset orientation, H list settings, Esc quit. Drag with the left button to rotate.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

			opts := app.RunOptions{}
			if f.watch {
				if f.configPath == "" {
					return fmt.Errorf("--watch: %w", config.ErrNoPath)
				}
				opts.WatchPath = f.configPath
			}
			return app.Run(cfg, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a TOML config file")
	fs.StringVar(&f.envPath, "env", "", "environment image (png, jpeg, bmp, tiff, webp)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.IntVar(&f.width, "width", 0, "window width in pixels")
	fs.IntVar(&f.height, "height", 0, "window height in pixels")
	fs.BoolVar(&f.profile, "profile", false, "log frame rate and memory statistics every second")
	fs.BoolVar(&f.watch, "watch", false, "reload the config file when it changes")
	fs.Uint64Var(&f.seed, "seed", 0, "dust layout seed")
	return cmd
}

// resolveConfig loads the config file and lays explicitly set flags over it.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("env") {
		cfg.Environment.Path = f.envPath
	}
	if changed("log-level") {
		cfg.Log.Level = strings.ToLower(f.logLevel)
	}
	if changed("width") && f.width > 0 {
		cfg.Window.Width = f.width
	}
	if changed("height") && f.height > 0 {
		cfg.Window.Height = f.height
	}
	if changed("profile") {
		cfg.Render.Profiling = f.profile
	}
	if changed("seed") {
		cfg.Scene.DustSeed = f.seed
	}
	return cfg, nil
}
