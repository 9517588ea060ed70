package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/cheritools/cherigen/cli/cmdcontext"
	"github.com/cheritools/cherigen/cli/config"
	"github.com/cheritools/cherigen/cli/configure"
)

var (
	cmdCtx  cmdcontext.CmdCtx
	cliOpts *config.CliOpts
	rootCmd *cobra.Command
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cherigen",
		Short: "CheriBSD cross-compilation artifact generator",
		Long: "Utility for generating CMake toolchain files and VM provisioning " +
			"scripts for CheriBSD cross-compilation targets",
		Example: `$ cherigen render cheribsd-riscv64-purecap
  $ cherigen targets
  $ cherigen render cheribsd-morello-purecap --check`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c",
		"", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewCompletionCmd(),
		NewRenderCmd(),
		NewTargetsCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// Execute root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf(err.Error())
	}
}

// InitRoot initializes global flags and loads the cherigen configuration.
func InitRoot() {
	rootCmd = NewCmdRoot()
	rootCmd.ParseFlags(os.Args)

	if cmdCtx.Cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := configure.Cli(&cmdCtx); err != nil {
		log.Fatalf("Failed to configure cherigen: %s", err)
	}

	var err error
	cliOpts, err = configure.GetCliOpts(cmdCtx.Cli.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to get cherigen configuration: %s", err)
	}
	configure.ResolvePathOpts(cliOpts, cmdCtx.Cli.ConfigDir)
}
