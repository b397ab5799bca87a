package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	netio "github.com/MASHUOA/MetaboAnalystR/pkg/io"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
)

// communitiesCommand creates the communities command.
func (c *CLI) communitiesCommand() *cobra.Command {
	var (
		flags  analysisFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "communities <edges>",
		Short: "Detect communities in a subnetwork",
		Long: `Communities partitions the selected subnetwork, keeps communities of at
least the minimum size and scores each by comparing its internal degrees to
its boundary degrees. With --out the communities and per-node assignments
are written as CSV.`,
		Example: `  metanet communities edges.csv --seeds seeds.txt
  metanet communities edges.csv --scores expr.csv --method leiden --weighted --out results/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, res, opts, err := flags.run(ctx, c, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			name := flags.target(res)
			prog := newProgress(c.Logger)
			result, err := runner.Communities(ctx, res.Session, name, opts)
			if err != nil {
				return err
			}
			prog.done("Detected communities", "subnetwork", name, "method", result.Method)

			printCommunities(result)
			if outDir == "" {
				printNextStep("Save as CSV", "metanet communities "+args[0]+" --out <dir>")
				return nil
			}
			return writeCommunities(outDir, result)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&flags.opts.Community, "method", "", "walktrap (default), flow (alias infomap), labelprop, leiden")
	cmd.Flags().BoolVar(&flags.opts.Weighted, "weighted", false, "weight edges by node scores")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for communities.csv and assignments.csv")

	return cmd
}

func writeCommunities(dir string, res *community.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	comms := filepath.Join(dir, "communities.csv")
	if err := netio.ExportFile(comms, func(w io.Writer) error {
		return netio.WriteCommunitiesCSV(w, res.Communities)
	}); err != nil {
		return err
	}
	assigned := filepath.Join(dir, "assignments.csv")
	if err := netio.ExportFile(assigned, func(w io.Writer) error {
		return netio.WriteAssignmentsCSV(w, res.Assignments)
	}); err != nil {
		return err
	}
	printFile(comms)
	printFile(assigned)
	return nil
}
