package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/config"
	"github.com/matzehuels/frosting/pkg/presets"
)

func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a color preset interactively",
		Long: `Choose a color preset interactively and store it in frosting.toml.

The file's own colors and sprinkle palette are cleared so the chosen preset
takes effect. Canvas and shape settings are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			all, err := presets.All(ctx, store)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewPresetListModel(all, file.Preset)).Run()
			if err != nil {
				return err
			}
			m, ok := final.(PresetListModel)
			if !ok || m.Selected == nil {
				printDetail("No selection made")
				return nil
			}

			usePreset(file, m.Selected.Name)
			if err := config.Save(path, file); err != nil {
				return err
			}
			printSuccess("Using preset %s", StyleHighlight.Render(m.Selected.Name))
			printFile(path)
			printNextStep("Render it", "frosting render")
			return nil
		},
	}
}

// usePreset names the preset in file and drops the colors that would
// override it.
func usePreset(file *config.File, name string) {
	file.Preset = name
	file.Background, file.FrostingTop, file.FrostingBottom = nil, nil, nil
	file.Sprinkles = nil
}
