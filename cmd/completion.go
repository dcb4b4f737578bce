package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash/fish/powershell/zsh]",
	Short: "Prints a bash/fish/powershell/zsh completion script",
	Long: `Prints a bash/fish/powershell/zsh completion script.
Source the output from your shell profile, e.g. for bash:
  serverpack completion bash > ~/.serverpack-completion.sh
  echo ". ~/.serverpack-completion.sh" >> ~/.bashrc`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "fish", "powershell", "zsh"},
	// No config is needed to print a script
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating completion file: %s\n", err)
			os.Exit(1)
		}
	},
}

func writeCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	case "zsh":
		return root.GenZshCompletion(out)
	}
	return fmt.Errorf("unsupported shell %q", shell)
}

func init() {
	Add(completionCmd)
}
