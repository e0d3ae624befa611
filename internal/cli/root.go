// Package cli implements the frosting command-line interface.
//
// # Commands
//
//   - render: generate a scene and write it as SVG, PNG, PDF, JSON, or a height map
//   - serve: serve scenes over HTTP
//   - presets: list, show, save, and delete color presets
//   - palette: edit the sprinkle palette stored in frosting.toml
//   - pick: choose a preset interactively
//   - cache: manage the artifact cache
//
// Every command reads frosting.toml (see package config) unless --config
// points elsewhere. All commands support --verbose (-v) for debug logging;
// the logger travels on the command's context.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Frosting generates frosted donut surfaces covered in sprinkles",
		Long:         `Frosting procedurally generates layered, dripping frosting and scatters non-overlapping sprinkles over it, exporting the scene as SVG, PNG, PDF, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "scene config file (default ~/.config/frosting/frosting.toml)")
	root.PersistentFlags().StringVar(&c.mongoURI, "mongo", "", "MongoDB URI for stored presets (default: presets.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
