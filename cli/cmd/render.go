package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheritools/cherigen/cli/cmdcontext"
	"github.com/cheritools/cherigen/cli/generate"
	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/target"
	"github.com/cheritools/cherigen/cli/templates/builtin"
	"github.com/cheritools/cherigen/cli/util"
)

var (
	outputDir    string
	checkMode    bool
	artifactKeys *[]string
	varsFromCli  *[]string
)

// NewRenderCmd renders the cross-compilation artifacts for a target.
func NewRenderCmd() *cobra.Command {
	var renderCmd = &cobra.Command{
		Use:   "render <TARGET_NAME> [flags]",
		Short: "Render cross-compilation artifacts for a target",
		Run: func(cmd *cobra.Command, args []string) {
			cmdCtx.CommandName = cmd.Name()
			err := internalRenderModule(&cmdCtx, args)
			util.HandleCmdErr(cmd, err)
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("requires target name argument")
			}
			return nil
		},
		ValidArgsFunction: renderValidArgsFunction,
		Long: `Render cross-compilation artifacts for a target.

Artifacts:
	cmake-toolchain: CMake toolchain file for cross-compiling against the target sysroot.
	qemu-mount-rootfs: shell script mounting the cross-built rootfs into a VM guest over NFS.`,
		Example: `
# Render all artifacts for a built-in target.

    $ cherigen render cheribsd-riscv64-purecap

# Render only the toolchain file, forcing static linking.

    $ cherigen render cheribsd-riscv64-purecap --artifact cmake-toolchain --var FORCE_STATIC=true

# Verify that the artifacts on disk are up to date.

    $ cherigen render cheribsd-morello-purecap --check`,
	}

	renderCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Directory artifacts are written to")
	renderCmd.Flags().BoolVar(&checkMode, "check", false,
		"Compare rendered artifacts with the files on disk, write nothing")
	artifactKeys = renderCmd.Flags().StringArray("artifact", []string{},
		"Artifact to render. May be passed multiple times, default is all")
	varsFromCli = renderCmd.Flags().StringArray("var", []string{},
		"Variable definition. Usage: --var VAR_NAME=value")

	return renderCmd
}

// renderValidArgsFunction returns valid target names for the render command.
func renderValidArgsFunction(
	_ *cobra.Command,
	args []string,
	toComplete string,
) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	registry := target.NewRegistry()
	if cliOpts != nil && cliOpts.Targets.Dir != "" {
		registry.LoadDir(cliOpts.Targets.Dir)
	}

	return registry.Names(), cobra.ShellCompDirectiveNoFileComp
}

// internalRenderModule is a default render module.
func internalRenderModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	for _, key := range *artifactKeys {
		if key != builtin.CMakeToolchain && key != builtin.QemuMountRootfs {
			return util.NewArgError(fmt.Sprintf("unknown artifact %q", key))
		}
	}

	genCtx := generate_ctx.GenerateCtx{
		VarsFromCli:  *varsFromCli,
		OutputDir:    outputDir,
		CheckMode:    checkMode,
		ArtifactKeys: *artifactKeys,
		CliOpts:      cliOpts,
	}

	if err := generate.FillCtx(cliOpts, &genCtx, args); err != nil {
		return err
	}

	return generate.Run(&genCtx)
}
