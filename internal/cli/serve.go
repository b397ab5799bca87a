package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/internal/server"
	"github.com/MASHUOA/MetaboAnalystR/pkg/observability"
	"github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg     server.Config
		config  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve analysis sessions over HTTP",
		Long: `Serve starts the HTTP API used by the interactive viewer. Sessions live in
memory and expire after --ttl of inactivity. Options from --config become
the defaults of every request.

Set METANET_REDIS_ADDR to share layout and payload caches between instances.`,
		Example: `  metanet serve
  metanet serve --addr :9000 --ttl 30m --config analysis.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var defaults pipeline.Options
			if config != "" {
				var err error
				if defaults, err = pipeline.LoadConfig(config); err != nil {
					return err
				}
			}
			defaults.Logger = c.Logger
			if err := defaults.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))

			srv := server.New(cfg, session.NewMemoryStore(), runner, defaults, c.Logger)
			printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cfg.SessionTTL, "ttl", session.DefaultTTL, "session lifetime")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "largest accepted request body in bytes")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "timeout", server.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().StringVarP(&config, "config", "c", "", "TOML file with default analysis options")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
