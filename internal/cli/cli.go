package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frosting/pkg/cache"
	"github.com/matzehuels/frosting/pkg/config"
	"github.com/matzehuels/frosting/pkg/core/render"
	"github.com/matzehuels/frosting/pkg/pipeline"
	"github.com/matzehuels/frosting/pkg/presets"
)

const appName = "frosting"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string // --config, empty for the XDG default
	mongoURI   string // --mongo, empty for the preset file
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Config and Presets
// =============================================================================

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the scene file and returns it with its path.
func (c *CLI) loadConfig() (*config.File, string, error) {
	path, err := c.resolvedConfigPath()
	if err != nil {
		return nil, "", err
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// presetStore opens MongoDB when --mongo is set and the preset file
// otherwise. The caller closes the store.
func (c *CLI) presetStore(ctx context.Context) (presets.Store, error) {
	if c.mongoURI != "" {
		return presets.NewMongoStore(ctx, c.mongoURI)
	}
	path, err := config.PresetsPath()
	if err != nil {
		return nil, err
	}
	return presets.NewFileStore(path), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/frosting/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats splits a comma-separated format list. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
