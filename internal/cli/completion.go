package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// completionShells lists the supported shells in help order.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionScript writes the completion script for shell.
func completionScript(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return root.GenBashCompletionV2(w, true)
	}
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Completion prints a script that teaches your shell relviz's commands
and flags. Load it once per session or install it:

  source <(relviz completion bash)
  relviz completion zsh > "${fpath[1]}/_relviz"
  relviz completion fish > ~/.config/fish/completions/relviz.fish
  relviz completion powershell | Out-String | Invoke-Expression`,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		// Runs without a config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScript(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}
