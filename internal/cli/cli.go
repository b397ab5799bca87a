// Package cli implements the metanet command-line interface.
//
// Every analysis command reads the same tables (an edge table plus optional
// node, seed and score tables), builds a session through the pipeline
// runner and then acts on one subnetwork of the ranked registry:
//
//	metanet analyze edges.csv --seeds seeds.txt -o payload.json
//	metanet communities edges.csv --seeds seeds.txt --method leiden
//	metanet paths edges.csv --from 7157 --to C00031
//	metanet module edges.csv --ids 7157,C00031,C00022
//	metanet export edges.csv --format graphml
//	metanet serve --addr :8080
//
// All commands accept --verbose (-v) for debug logging.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/buildinfo"
	"github.com/MASHUOA/MetaboAnalystR/pkg/cache"
	"github.com/MASHUOA/MetaboAnalystR/pkg/observability"
	"github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	appName = "metanet"

	// envRedisAddr selects the Redis cache backend when set.
	envRedisAddr = "METANET_REDIS_ADDR"
	// envCachePrefix namespaces every cache key, for deployments sharing
	// one Redis instance.
	envCachePrefix = "METANET_CACHE_PREFIX"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the observability
// hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetAnalysisHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "metanet analyzes biological interaction networks",
		Long:         `metanet projects query identifiers onto an interaction network, ranks the connected subnetworks, finds modules and communities, and lays the result out for an interactive viewer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.communitiesCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.moduleCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, newKeyer(), c.Logger), nil
}

// newKeyer returns a prefixed keyer when METANET_CACHE_PREFIX is set and nil,
// the runner default, otherwise.
func newKeyer() cache.Keyer {
	if prefix := os.Getenv(envCachePrefix); prefix != "" {
		return cache.NewScopedKeyer(nil, prefix)
	}
	return nil
}

// newCache selects Redis when METANET_REDIS_ADDR is set, else the file
// cache. An unusable cache directory disables caching rather than failing.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv(envRedisAddr); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", addr)
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the file cache directory (~/.cache/metanet by default).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
