package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/MASHUOA/MetaboAnalystR/pkg/graph"
	"github.com/MASHUOA/MetaboAnalystR/pkg/layout"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/transform"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for metanet.

Besides commands and flags, the scripts complete the values of enumerated
flags such as --method, --layout, --category, --measure, --mode and --role.

Bash:
  $ source <(metanet completion bash)

Zsh:
  $ metanet completion zsh > "${fpath[1]}/_metanet"

Fish:
  $ metanet completion fish > ~/.config/fish/completions/metanet.fish

PowerShell:
  PS> metanet completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Flag Value Completion
// =============================================================================

// flagValues lists the accepted values of every enumerated flag, keyed by
// flag name.
func flagValues() map[string][]string {
	return map[string][]string{
		"method":   append(keysOf(community.ValidMethods), "infomap"),
		"layout":   keysOf(layout.ValidAlgorithms),
		"category": keysOf(graph.ValidCategories),
		"measure":  keysOf(network.ValidTopologies),
		"mode":     keysOf(network.ValidModes),
		"role":     keysOf(transform.ValidRoles),
		"format":   keysOf(validExportFormats),
	}
}

// registerCompletions attaches value completion to the enumerated flags of
// cmd and its subcommands.
func registerCompletions(cmd *cobra.Command) {
	values := flagValues()
	for name, vals := range values {
		if cmd.Flags().Lookup(name) != nil {
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
	}
	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}

func keysOf[K ~string, V any](m map[K]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, string(k))
	}
	slices.Sort(out)
	return out
}
