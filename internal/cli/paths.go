package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
)

// pathsCommand creates the paths command.
func (c *CLI) pathsCommand() *cobra.Command {
	var (
		flags   analysisFlags
		from    string
		to      string
		compact bool
	)

	cmd := &cobra.Command{
		Use:   "paths <edges>",
		Short: "List all shortest paths between two nodes",
		Example: `  metanet paths edges.csv --from 7157 --to C00031
  metanet paths edges.csv --from 7157 --to C00031 --compact`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, res, _, err := flags.run(cmd.Context(), c, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			name := flags.target(res)
			paths, err := res.Session.ShortestPaths(name, from, to)
			if err != nil {
				return err
			}
			if compact {
				fmt.Println(graph.FormatPaths(paths))
				return nil
			}
			if !paths.Connected {
				printWarning("%s and %s are not connected in %s", from, to, name)
				return nil
			}

			printSuccess("%d shortest paths of length %d in %s", len(paths.Paths), paths.Length(), name)
			if paths.Truncated {
				printDetail("more paths exist; showing the first %d", len(paths.Paths))
			}
			for _, p := range paths.Paths {
				fmt.Println("  " + StyleValue.Render(strings.Join(p, " "+iconArrow+" ")))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&from, "from", "", "start node id")
	cmd.Flags().StringVar(&to, "to", "", "end node id")
	cmd.Flags().BoolVar(&compact, "compact", false, `print paths as "a->b||c->d"`)
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
