// Package generate implements the artifact generation flow of the render
// command.
package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheritools/cherigen/cli/config"
	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/generate/internal/steps"
	"github.com/cheritools/cherigen/cli/genlog"
	"github.com/cheritools/cherigen/cli/templates/builtin"
	"github.com/cheritools/cherigen/cli/util"
	"github.com/cheritools/cherigen/cli/version"
)

// auditLogName is the file name of the generation audit log.
const auditLogName = "cherigen.log"

// FillCtx fills the generate context.
func FillCtx(cliOpts *config.CliOpts, genCtx *generate_ctx.GenerateCtx, args []string) error {
	if len(args) >= 1 {
		genCtx.TargetName = args[0]
	} else {
		return fmt.Errorf("missing target name argument. " +
			"Try `cherigen render --help` for more information")
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}
	genCtx.WorkDir = workingDir

	if genCtx.OutputDir == "" {
		genCtx.OutputDir = cliOpts.Output.Dir
	}
	if len(genCtx.ArtifactKeys) == 0 {
		genCtx.ArtifactKeys = builtin.Names[:]
	}

	return nil
}

// Run generates the artifacts for a target.
func Run(genCtx *generate_ctx.GenerateCtx) error {
	if err := checkCtx(genCtx); err != nil {
		return util.InternalError("Generate context check failed: %s", version.GetVersion, err)
	}

	store, err := builtin.Load()
	if err != nil {
		return util.InternalError("Built-in templates loading failed: %s",
			version.GetVersion, err)
	}

	stepsChain := []steps.Step{
		steps.LoadDescriptor{},
		steps.SetDerivedDefaults{},
		steps.BuildValues{},
		steps.FillVarsFromCli{},
		steps.RenderArtifacts{},
		steps.CheckArtifacts{},
		steps.WriteArtifacts{},
		steps.CopyAssets{},
	}

	artCtx := steps.NewArtifactsCtx()
	artCtx.Store = store
	for _, step := range stepsChain {
		if err := step.Run(genCtx, &artCtx); err != nil {
			return err
		}
	}

	if artCtx.Drift {
		return fmt.Errorf("artifacts for target %q are out of date", genCtx.TargetName)
	}

	if !genCtx.CheckMode {
		logRun(genCtx, &artCtx)
	}

	return nil
}

// checkCtx checks the generate context for validity.
func checkCtx(genCtx *generate_ctx.GenerateCtx) error {
	if genCtx.TargetName == "" {
		return fmt.Errorf("target name is missing")
	}
	if genCtx.CliOpts == nil {
		return fmt.Errorf("configuration is missing")
	}

	return nil
}

// logRun appends the written artifacts to the audit log, if configured.
// The audit log never affects the artifacts themselves.
func logRun(genCtx *generate_ctx.GenerateCtx, artCtx *steps.ArtifactsCtx) {
	logOpts := genCtx.CliOpts.Log
	if logOpts.Dir == "" {
		return
	}

	logger := genlog.NewLogger(&genlog.LoggerOpts{
		Filename:   filepath.Join(logOpts.Dir, auditLogName),
		MaxSize:    logOpts.MaxSize,
		MaxAge:     logOpts.MaxAge,
		MaxBackups: logOpts.MaxBackups,
	})
	defer logger.Close()

	for _, artifact := range artCtx.Artifacts {
		logger.Printf("target %s: wrote %s", genCtx.TargetName, artifact.Path)
	}
}
