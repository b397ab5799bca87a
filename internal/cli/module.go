package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// moduleCommand creates the module command.
func (c *CLI) moduleCommand() *cobra.Command {
	var (
		flags  analysisFlags
		ids    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "module <edges>",
		Short: "Extract the module connecting a set of nodes",
		Long: `Module unions the shortest paths between every pair of the given nodes
within the selected subnetwork, registers the result as a new subnetwork
and optionally writes its payload.`,
		Example: `  metanet module edges.csv --ids 7157,C00031,C00022
  metanet module edges.csv --ids 7157,C00031,C00022 -o module.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, res, opts, err := flags.run(ctx, c, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			entry, err := res.Session.ExtractModule(flags.target(res), splitIDs(ids))
			if err != nil {
				return err
			}
			snap, err := res.Session.Snapshot(entry.Name)
			if err != nil {
				return err
			}

			printSuccess("Extracted %s", entry.Name)
			printKeyValue("Nodes", fmt.Sprint(entry.Stats.Nodes))
			printKeyValue("Edges", fmt.Sprint(entry.Stats.Edges))
			for _, n := range snap.Graph.Nodes() {
				printSeedLine(n.DisplayLabel(), slices.Contains(snap.Seeds, n.ID))
			}
			if output == "" {
				return nil
			}

			payload, cached, err := runner.PayloadWithCacheInfo(ctx, snap, opts)
			if err != nil {
				return err
			}
			printNewline()
			printStats(len(payload.Nodes), len(payload.Edges), cached)
			return writePayload(payload, output, entry.Name)
		},
	}

	flags.register(cmd)
	flags.registerLayout(cmd)
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated node ids to connect (at least 3)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the module payload to this file (- for stdout)")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}
