package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/frosting/pkg/cache"
	"github.com/matzehuels/frosting/pkg/pipeline"
	"github.com/matzehuels/frosting/pkg/server"
)

// redisKeyPrefix namespaces artifact keys in a shared Redis.
const redisKeyPrefix = "frosting:"

type serveOpts struct {
	addr     string
	redisURL string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var sflags sceneFlags
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scenes over HTTP",
		Long: `Serve scenes over HTTP.

The scene flags and frosting.toml set the base configuration; each request
can override it with query parameters, e.g.

  curl 'localhost:8080/scene.png?preset=White+Frosted+Donut&seed=7' -o donut.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &sflags, &opts)
		},
	}

	sflags.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared artifact cache (default: local file cache)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, flags *sceneFlags, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	file, _, err := c.loadConfig()
	if err != nil {
		return err
	}
	flags.apply(cmd, file)

	store, err := c.presetStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	base, err := file.Resolve(ctx, store)
	if err != nil {
		return err
	}
	if err := base.Validate(); err != nil {
		return err
	}

	var runner *pipeline.Runner
	switch {
	case opts.redisURL != "" && !opts.noCache:
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return err
		}
		logger.Info("using redis cache")
		runner = pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), logger)
	default:
		if runner, err = c.newRunner(opts.noCache); err != nil {
			return err
		}
	}
	defer runner.Close()

	srv := server.New(runner,
		server.WithPresetStore(store),
		server.WithBaseConfig(base),
		server.WithLogger(logger),
	)
	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	printNextStep("Try", "curl localhost"+opts.addr+"/scene.svg?seed=1")
	return srv.ListenAndServe(ctx, opts.addr)
}
