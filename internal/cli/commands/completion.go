package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the completion command for shell completions
func newCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate a shell completion script for units. Unit names are completed
for convert, factor, show and undefine.

Bash:

  $ source <(units completion bash)

Zsh:

  $ units completion zsh > "${fpath[1]}/_units"

Fish:

  $ units completion fish > ~/.config/fish/completions/units.fish

PowerShell:

  PS> units completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE:    func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()

			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeUnits completes unit names for the first n positional arguments.
// Completion requests skip the root hooks, so the registry is set up here.
func completeUnits(a *app, n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if a.registry == nil {
			if err := a.setup(cmd.Context()); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			defer a.teardown()
		}

		var names []string
		for _, name := range a.registry.Names() {
			if strings.HasPrefix(name, toComplete) {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeUnitsAfterValue skips the leading VALUE argument of convert.
func completeUnitsAfterValue(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	units := completeUnits(a, 3)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return units(cmd, args, toComplete)
	}
}
