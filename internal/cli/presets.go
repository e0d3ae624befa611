package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/core/palette"
	ferrors "github.com/matzehuels/frosting/pkg/errors"
	"github.com/matzehuels/frosting/pkg/presets"
)

func (c *CLI) presetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and manage color presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresetsList(cmd)
		},
	}

	cmd.AddCommand(c.presetsShowCommand())
	cmd.AddCommand(c.presetsSaveCommand())
	cmd.AddCommand(c.presetsRemoveCommand())

	return cmd
}

func (c *CLI) runPresetsList(cmd *cobra.Command) error {
	ctx := cmd.Context()
	store, err := c.presetStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := presets.All(ctx, store)
	if err != nil {
		return err
	}
	fmt.Println(presetTable(all, -1))
	return nil
}

// presetTable renders presets with color swatches. The row at cursor is
// highlighted; pass -1 for none.
func presetTable(all []presets.Preset, cursor int) string {
	rows := make([][]string, len(all))
	for i, p := range all {
		kind := "user"
		if presets.IsBuiltin(p.Name) {
			kind = "built-in"
		}
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows[i] = []string{
			mark + p.Name,
			swatches([]palette.Color{p.Background, p.FrostingTop, p.FrostingBottom}),
			sprinkleSwatches(p.Sprinkles),
			kind,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Colors", "Sprinkles", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == cursor && col == 0:
				return StyleHighlight.Bold(true)
			case col == 3:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func sprinkleSwatches(hex []string) string {
	colors := make([]palette.Color, 0, len(hex))
	for _, h := range hex {
		if c, err := palette.Parse(h); err == nil {
			colors = append(colors, c)
		}
	}
	return swatches(colors)
}

func (c *CLI) presetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.presetStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := presets.Get(ctx, store, args[0])
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(p.Name))
			printKeyValue("background", swatch(p.Background)+" "+string(p.Background))
			printKeyValue("top", swatch(p.FrostingTop)+" "+string(p.FrostingTop))
			printKeyValue("bottom", swatch(p.FrostingBottom)+" "+string(p.FrostingBottom))
			printKeyValue("sprinkles", sprinkleSwatches(p.Sprinkles))
			return nil
		},
	}
}

func (c *CLI) presetsSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the colors of the current config as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			file, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := c.presetStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cfg, err := file.Resolve(ctx, store)
			if err != nil {
				return err
			}
			p := presets.FromConfig(args[0], cfg)
			if err := store.Put(ctx, p); err != nil {
				return err
			}
			if presets.IsBuiltin(p.Name) {
				printWarning("%q now shadows the built-in preset", p.Name)
			}
			printSuccess("Saved preset %s", StyleHighlight.Render(p.Name))
			return nil
		},
	}
}

func (c *CLI) presetsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a saved preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.presetStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			err = store.Delete(ctx, args[0])
			if ferrors.Is(err, ferrors.ErrCodePresetNotFound) && presets.IsBuiltin(args[0]) {
				return ferrors.New(ferrors.ErrCodeInvalidPreset, "%q is built in and cannot be deleted", args[0])
			}
			if err != nil {
				return err
			}
			printSuccess("Deleted preset %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}
