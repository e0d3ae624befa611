package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/config"
	"github.com/matzehuels/frosting/pkg/core/palette"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Edit the sprinkle palette in frosting.toml",
		Long: `Edit the sprinkle palette in frosting.toml.

Edits pin the full palette in the config file, so they survive a preset
named there. The last remaining color cannot be removed.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List sprinkle colors with their indices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editPalette(cmd, false, func(p palette.Palette) (palette.Palette, error) { return p, nil })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add [color]",
		Short: "Append a color (default " + string(palette.DefaultAddition) + ")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col := palette.DefaultAddition
			if len(args) == 1 {
				var err error
				if col, err = palette.Parse(args[0]); err != nil {
					return err
				}
			}
			return c.editPalette(cmd, true, func(p palette.Palette) (palette.Palette, error) {
				return p.With(col), nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <index> <color>",
		Short: "Replace the color at index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			col, err := palette.Parse(args[1])
			if err != nil {
				return err
			}
			return c.editPalette(cmd, true, func(p palette.Palette) (palette.Palette, error) {
				return p.Set(i, col)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the color at index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return c.editPalette(cmd, true, func(p palette.Palette) (palette.Palette, error) {
				return p.Remove(i)
			})
		},
	})

	return cmd
}

// editPalette applies edit to the resolved palette, saves the config when
// write is set, and prints the result.
func (c *CLI) editPalette(cmd *cobra.Command, write bool, edit func(palette.Palette) (palette.Palette, error)) error {
	ctx := cmd.Context()
	file, path, err := c.loadConfig()
	if err != nil {
		return err
	}
	store, err := c.presetStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	pal, err := file.EditPalette(ctx, store, edit)
	if err != nil {
		return err
	}
	if write {
		if err := config.Save(path, file); err != nil {
			return err
		}
		loggerFromContext(ctx).Debug("saved config", "path", path)
		printSuccess("Palette has %d colors", pal.Len())
	}
	for i, col := range pal.Colors() {
		fmt.Printf("  %s %s %s\n", StyleDim.Render(fmt.Sprintf("%2d", i)), swatch(col), col)
	}
	return nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, ferrors.New(ferrors.ErrCodeInvalidIndex, "index %q is not a number", s)
	}
	return i, nil
}
