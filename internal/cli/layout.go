package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	netio "github.com/MASHUOA/MetaboAnalystR/pkg/io"
)

// layoutCommand creates the layout command for re-laying out a saved graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  analysisFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout <graph.json>",
		Short: "Compute node positions for a saved graph",
		Long: `Layout reads a graph document (as written by 'export -f json') and computes
node positions with the chosen algorithm. The output lists one {id, x, y}
record per node in graph order.

Results are cached, keyed by graph content and layout options.`,
		Example: `  metanet layout net.json --layout kk --seed 7
  metanet layout net.json --layout circle -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], &flags, output)
		},
	}

	flags.registerLayout(cmd)
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.opts.Refresh, "refresh", false, "recompute cached results")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")

	return cmd
}

// runLayout loads the graph, computes the layout and writes the positions.
func (c *CLI) runLayout(ctx context.Context, input string, flags *analysisFlags, output string) error {
	opts, err := flags.options(c)
	if err != nil {
		return err
	}
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout))
	spinner.Start()
	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		return graph.WriteLayout(res, os.Stdout)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := netio.ExportFile(output, func(w io.Writer) error { return graph.WriteLayout(res, w) }); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete (%s)", res.Algorithm)
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), cacheHit)
	return nil
}
