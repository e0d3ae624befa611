package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/core/palette"
	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/pipeline"
)

// renderOpts holds the render command's own flags.
type renderOpts struct {
	output  string
	formats []string
	seed    uint64
	seeded  bool
	scale   float64
	title   string
	noCache bool
	refresh bool
	bare    bool
	outline string

	sprinkleSeed   uint64
	sprinkleSeeded bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var sflags sceneFlags
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate a frosted scene",
		Long: `Generate a frosted scene and write it in one or more formats.

Without --seed a fresh seed is drawn and printed, so the scene can be
reproduced later with 'frosting render --seed N'.`,
		Example: `  frosting render
  frosting render --seed 42 --sprinkle-seed 7 --sprinkles "#000000,#FFFFFF"
  frosting render -f svg,png --seed 42 -o donut
  frosting render --preset "Mint Frosted Chocolate Donut" --density 40 -f png --scale 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			opts.seeded = cmd.Flags().Changed("seed")
			opts.sprinkleSeeded = cmd.Flags().Changed("sprinkle-seed")
			return c.runRender(cmd, &sflags, &opts)
		},
	}

	sflags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (one format), base path (several), or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(render.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default: drawn and printed)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG title")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().Uint64Var(&opts.sprinkleSeed, "sprinkle-seed", 0, "keep the frosting of --seed and re-scatter sprinkles from this seed")
	cmd.Flags().BoolVar(&opts.bare, "no-sprinkles", false, "draw the frosting only")
	cmd.Flags().StringVar(&opts.outline, "surface-line", "", "outline the sprinkle surface in this color")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags *sceneFlags, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	file, path, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger.Debug("loaded config", "path", path)
	flags.apply(cmd, file)

	store, err := c.presetStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := file.Resolve(ctx, store)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Config:  cfg,
		Formats: opts.formats,
		Scale:   opts.scale,
		Title:   opts.title,
		Refresh: opts.refresh,
		Logger:  logger,

		NoSprinkles: opts.bare,
		SurfaceLine: palette.Color(opts.outline),
	}
	if opts.seeded {
		popts.Seed = &opts.seed
	}
	if opts.sprinkleSeeded {
		popts.SprinkleSeed = &opts.sprinkleSeed
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		if len(opts.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.formats))
		}
		_, err := os.Stdout.Write(result.Artifacts[opts.formats[0]])
		return err
	}

	written, err := writeArtifacts(ctx, result, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(written)))

	printSuccess("Generated scene %s", StyleHighlight.Render(result.ID.String()[:8]))
	fmt.Println(sceneStats(result.Stats.Layers, result.Stats.Sprinkles, result.Stats.Target, result.CacheInfo.RenderHit))
	for _, p := range written {
		printFile(p)
	}
	printKeyValue("seed", strconv.FormatUint(result.Seed, 10))
	if result.SprinkleSeed != nil {
		printKeyValue("sprinkle seed", strconv.FormatUint(*result.SprinkleSeed, 10))
	}
	if !opts.seeded {
		printNextStep("Reproduce", fmt.Sprintf("frosting render --seed %d", result.Seed))
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order.
func writeArtifacts(ctx context.Context, result *pipeline.Result, opts *renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)
	var written []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, format, result.Seed, len(opts.formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, err
			}
		}
		data := result.Artifacts[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, err
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(data))
		written = append(written, path)
	}
	return written, nil
}

// outputPath picks the file for one format. A single format writes to
// output verbatim; several formats treat output as a base path and strip a
// known extension from it. Without output the seed names the file.
func outputPath(output, format string, seed uint64, count int) string {
	if output != "" && count == 1 {
		return output
	}
	base := output
	if base == "" {
		base = fmt.Sprintf("frosting-%d", seed)
	} else if ext := strings.TrimPrefix(filepath.Ext(base), "."); slices.Contains(render.Formats, ext) {
		base = strings.TrimSuffix(base, "."+ext)
	}
	return base + "." + render.Extension(format)
}
