package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cheritools/cherigen/cli/util"
)

const (
	shellBash = "bash"
	shellZsh  = "zsh"
	shellFish = "fish"
)

var shellSupported = []string{shellBash, shellZsh, shellFish}

func listShells() string {
	return strings.Join(shellSupported, " | ")
}

// NewCompletionCmd creates a new completion command.
func NewCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "completion <SHELL_TYPE>",
		Short: "Generate autocomplete for a specified shell. " +
			fmt.Sprintf("Supported shell type: %s", listShells()),
		ValidArgs: shellSupported,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalCompletionModule(cmd, args)
			util.HandleCmdErr(cmd, err)
		},
		Example: `
# Enable auto-completion in current bash shell.

    $ . <(cherigen completion bash)`,
	}

	return cmd
}

// internalCompletionModule is a default completion module.
func internalCompletionModule(cmd *cobra.Command, args []string) error {
	switch shell := args[0]; shell {
	case shellBash:
		return cmd.Root().GenBashCompletion(os.Stdout)
	case shellZsh:
		return cmd.Root().GenZshCompletion(os.Stdout)
	case shellFish:
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	}
	return nil
}
