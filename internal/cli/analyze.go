package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	netio "github.com/MASHUOA/MetaboAnalystR/pkg/io"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// analyzeCommand creates the analyze command: build, filter, decompose and
// write the viewer payload of one subnetwork.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags       analysisFlags
		output      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <edges>",
		Short: "Decompose a network and write the viewer payload",
		Long: `Analyze builds an interaction network from an edge table, applies the
optional correlation and topology filters (or the minimal connected subgraph
with --mcs), ranks the connected subnetworks and writes the laid-out payload
of the selected one as JSON.`,
		Example: `  metanet analyze edges.csv --seeds seeds.txt
  metanet analyze edges.csv --pos-lo 0.5 --pos-hi 1 --layout kk -o net.json
  metanet analyze edges.csv --seeds seeds.txt --mcs --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, res, opts, err := flags.run(ctx, c, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			printRanking(res.Report)

			name := flags.target(res)
			if interactive {
				picked, err := pickSubnetwork(res.Report.Subnetworks)
				if err != nil {
					return err
				}
				if picked == "" {
					printInfo("No subnetwork selected")
					return nil
				}
				name = picked
			}

			snap, err := res.Session.Snapshot(name)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Laying out "+name+"...")
			spinner.Start()
			payload, cached, err := runner.PayloadWithCacheInfo(ctx, snap, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			printSuccess("Laid out %s", name)
			printStats(len(payload.Nodes), len(payload.Edges), cached)
			return writePayload(payload, output, name)
		},
	}

	flags.register(cmd)
	flags.registerLayout(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <subnetwork>.json, - for stdout)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the subnetwork interactively")

	return cmd
}

// writePayload writes p to path, to stdout for "-", or to <name>.json.
func writePayload(p *graph.Payload, path, name string) error {
	if path == "-" {
		return graph.WritePayload(p, os.Stdout)
	}
	if path == "" {
		path = name + ".json"
	}
	if err := netio.ExportFile(path, func(w io.Writer) error { return graph.WritePayload(p, w) }); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// pickSubnetwork runs the interactive registry picker and returns the
// chosen entry name, or "" when the user quit.
func pickSubnetwork(entries []session.Entry) (string, error) {
	model := NewSubnetworkListModel(entries)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("subnetwork picker: %w", err)
	}
	if m, ok := final.(SubnetworkListModel); ok && m.Selected != nil {
		return m.Selected.Name, nil
	}
	return "", nil
}
