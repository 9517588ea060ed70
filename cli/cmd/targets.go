package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/cheritools/cherigen/cli/cmdcontext"
	"github.com/cheritools/cherigen/cli/target"
	"github.com/cheritools/cherigen/cli/util"
)

// NewTargetsCmd lists the available cross-compilation targets.
func NewTargetsCmd() *cobra.Command {
	var targetsCmd = &cobra.Command{
		Use:   "targets",
		Short: "List available cross-compilation targets",
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalTargetsModule(&cmdCtx, args)
			util.HandleCmdErr(cmd, err)
		},
	}

	return targetsCmd
}

// internalTargetsModule is a default targets module.
func internalTargetsModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	registry := target.NewRegistry()
	if cliOpts.Targets.Dir != "" {
		if err := registry.LoadDir(cliOpts.Targets.Dir); err != nil {
			return err
		}
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"name", "processor", "triple", "linkage"})
	for _, descriptor := range registry.All() {
		writer.AppendRow(table.Row{
			descriptor.Name,
			descriptor.Processor,
			descriptor.Triple,
			descriptor.Linkage(),
		})
	}
	writer.Render()

	return nil
}
