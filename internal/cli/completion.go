package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the named shell to stdout.

The script covers every flowboard subcommand and flag, including the
--policy values accepted by sync. Pipe it into the shell for the current
session, or write it where the shell picks up completions on start:

  bash        flowboard completion bash > ~/.local/share/bash-completion/completions/flowboard
  zsh         flowboard completion zsh > "${fpath[1]}/_flowboard"
  fish        flowboard completion fish > ~/.config/fish/completions/flowboard.fish
  powershell  flowboard completion powershell >> $PROFILE

Open a new shell afterwards to pick up the script.
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
