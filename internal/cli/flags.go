package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
	"github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
)

// analysisFlags are shared by every command that builds a session from
// tables.
type analysisFlags struct {
	files      pipeline.InputFiles
	config     string
	subnetwork string
	exclude    string
	noCache    bool
	role       string
	opts       pipeline.Options
}

// register binds the table, build and filter flags.
func (f *analysisFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.files.Nodes, "nodes", "", "node table (id, label, kind, symbol, value...)")
	fl.StringVar(&f.files.Seeds, "seeds", "", "seed identifiers, one per line")
	fl.StringVar(&f.files.Scores, "scores", "", "per-node scores (id, value), e.g. expression")
	fl.StringVarP(&f.config, "config", "c", "", "TOML config file; flags override it")
	fl.StringVar(&f.subnetwork, "subnetwork", "", "registry entry to use (default: top ranked)")
	fl.StringVar(&f.exclude, "exclude", "", "comma-separated node ids removed from the subnetwork")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.opts.Refresh, "refresh", false, "recompute cached results")

	fl.StringVar(&f.opts.Mode, "mode", "", "projection: attributed (default), top")
	fl.IntVar(&f.opts.MinNodes, "min-nodes", 0, "smallest subnetwork kept (default 3)")
	fl.IntVar(&f.opts.MaxKept, "max-kept", 0, "most subnetworks kept (default 10)")
	fl.IntVar(&f.opts.MaxSeeds, "max-seeds", 0, "most seeds connected by --mcs (default 200)")

	fl.Float64Var(&f.opts.Correlation.NegLo, "neg-lo", 0, "negative band lower bound")
	fl.Float64Var(&f.opts.Correlation.NegHi, "neg-hi", 0, "negative band upper bound (exclusive)")
	fl.Float64Var(&f.opts.Correlation.PosLo, "pos-lo", 0, "positive band lower bound")
	fl.Float64Var(&f.opts.Correlation.PosHi, "pos-hi", 0, "positive band upper bound (exclusive)")
	fl.Float64Var(&f.opts.Correlation.PValue, "pvalue", 0, "largest edge p-value kept")
	fl.Float64Var(&f.opts.Correlation.QValue, "qvalue", 0, "largest adjusted p-value kept")
	fl.IntVar(&f.opts.Topology.MinDegree, "min-degree", 0, "remove nodes with degree at most this")
	fl.Float64Var(&f.opts.Topology.MinBetweenness, "min-betweenness", 0, "remove nodes with betweenness at most this")
	fl.StringVar(&f.role, "role", "", "nodes the topology filter applies to: all (default), gene, other")
	fl.BoolVar(&f.opts.MCS, "mcs", false, "reduce to the minimal subgraph connecting the seeds")
}

// registerLayout binds the layout and styling flags.
func (f *analysisFlags) registerLayout(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.opts.Layout, "layout", "", "layout: default, fr, kk, large, circle, random")
	fl.Int64Var(&f.opts.Seed, "seed", 0, "layout random seed (default 42)")
	fl.Float64Var(&f.opts.Width, "width", 0, "frame width (default 800)")
	fl.Float64Var(&f.opts.Height, "height", 0, "frame height (default 600)")
	fl.StringVar(&f.opts.Category, "category", "", "node styling: default, global, diamond")
	fl.StringVar(&f.opts.Measure, "measure", "", "centrality behind topology colours: betweenness (default), degree, closeness")
}

// options merges the config file under the flags.
func (f *analysisFlags) options(c *CLI) (pipeline.Options, error) {
	opts := f.opts
	if f.role != "" {
		role, err := transform.ParseRole(f.role)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Topology.Role = role
	}
	if f.config != "" {
		base, err := pipeline.LoadConfig(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = pipeline.Merge(base, opts)
	}
	opts.Logger = c.Logger
	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	c.Logger.Debug("options", "effective", opts.String())
	return opts, nil
}

// run loads the tables and analyzes them. The caller closes the runner.
func (f *analysisFlags) run(ctx context.Context, c *CLI, edges string) (*pipeline.Runner, *pipeline.Result, pipeline.Options, error) {
	opts, err := f.options(c)
	if err != nil {
		return nil, nil, opts, err
	}
	f.files.Edges = edges
	in, err := pipeline.LoadInput(f.files)
	if err != nil {
		return nil, nil, opts, err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return nil, nil, opts, fmt.Errorf("initialize runner: %w", err)
	}

	prog := newProgress(c.Logger)
	res, err := runner.Analyze(ctx, in, opts)
	if err != nil {
		runner.Close()
		return nil, nil, opts, err
	}
	prog.done("Analyzed network", "nodes", res.Stats.NodeCount, "subnetworks", res.Report.Kept())

	// Exclusion re-ranks the registry, so the target is pinned by name first.
	f.subnetwork = f.target(res)
	if ids := splitIDs(f.exclude); len(ids) > 0 {
		report, err := res.Session.ExcludeNodes(f.subnetwork, ids)
		if err != nil {
			runner.Close()
			return nil, nil, opts, err
		}
		c.Logger.Info("Excluded nodes", "removed", len(report.Removed))
		res.Report = report
	}
	return runner, res, opts, nil
}

// target returns the selected registry entry, defaulting to the top one.
func (f *analysisFlags) target(res *pipeline.Result) string {
	if f.subnetwork != "" {
		return f.subnetwork
	}
	return res.Report.Subnetworks[0].Name
}

// splitIDs parses a comma or whitespace separated id list.
func splitIDs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
